package domain

// NegotiationSettings are tenant-scoped toggles and magnitudes controlling
// which discount categories the negotiation engine may offer.
//
// Settings are authored in the platform control plane and mutated only through
// the settings-update endpoint; the engine reads them. A loaded value is always
// totally defined: absent fields are filled from DefaultSettings at the
// normalization boundary, never downstream.
type NegotiationSettings struct {
	AllowAINegotiation bool `json:"allowAINegotiation"`

	PixDiscountEnabled    bool    `json:"pixDiscountEnabled"`
	PixDiscountPercentage float64 `json:"pixDiscountPercentage"`

	CashDiscountEnabled    bool    `json:"cashDiscountEnabled"`
	CashDiscountPercentage float64 `json:"cashDiscountPercentage"`

	InstallmentEnabled  bool    `json:"installmentEnabled"`
	MaxInstallments     int     `json:"maxInstallments"`
	MinInstallmentValue float64 `json:"minInstallmentValue"`

	// Tier lists are kept in the stored order; the evaluator picks by
	// best percentage among qualifying tiers, not by list position.
	ExtendedStayRules []StayRule         `json:"extendedStayRules"`
	EarlyBookingRules []EarlyBookingRule `json:"earlyBookingRules"`
	LastMinuteRules   []LastMinuteRule   `json:"lastMinuteRules"`

	BookNowDiscountEnabled    bool    `json:"bookNowDiscountEnabled"`
	BookNowDiscountPercentage float64 `json:"bookNowDiscountPercentage"`
	BookNowTimeLimit          int     `json:"bookNowTimeLimit"` // hours to accept

	MaxDiscountPercentage float64 `json:"maxDiscountPercentage"`
	MinPriceAfterDiscount float64 `json:"minPriceAfterDiscount"`
}

type StayRule struct {
	MinDays            int     `json:"minDays"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type EarlyBookingRule struct {
	DaysInAdvance      int     `json:"daysInAdvance"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type LastMinuteRule struct {
	DaysBeforeCheckIn  int     `json:"daysBeforeCheckIn"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// DefaultSettings returns the conservative configuration used when a tenant
// has no stored document. Returned by value so callers cannot mutate a shared
// instance.
func DefaultSettings() NegotiationSettings {
	return NegotiationSettings{
		AllowAINegotiation: true,

		PixDiscountEnabled:    true,
		PixDiscountPercentage: 5,

		CashDiscountEnabled:    false,
		CashDiscountPercentage: 3,

		InstallmentEnabled:  true,
		MaxInstallments:     3,
		MinInstallmentValue: 100,

		ExtendedStayRules: []StayRule{
			{MinDays: 7, DiscountPercentage: 5},
			{MinDays: 14, DiscountPercentage: 8},
			{MinDays: 28, DiscountPercentage: 12},
		},
		EarlyBookingRules: []EarlyBookingRule{
			{DaysInAdvance: 60, DiscountPercentage: 8},
			{DaysInAdvance: 30, DiscountPercentage: 5},
		},
		LastMinuteRules: []LastMinuteRule{
			{DaysBeforeCheckIn: 3, DiscountPercentage: 10},
			{DaysBeforeCheckIn: 7, DiscountPercentage: 5},
		},

		BookNowDiscountEnabled:    true,
		BookNowDiscountPercentage: 3,
		BookNowTimeLimit:          24,

		MaxDiscountPercentage: 15,
		MinPriceAfterDiscount: 0,
	}
}
