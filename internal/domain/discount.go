package domain

import "time"

// Strategy identifies the discount strategy an evaluation selected. Pix and
// cash surface to clients under the same result type ("payment_method"); the
// strategy constant stays distinct so the message composer can branch.
type Strategy string

const (
	StrategyPix          Strategy = "pix"
	StrategyExtendedStay Strategy = "extended_stay"
	StrategyBookNow      Strategy = "book_now"
	StrategyCash         Strategy = "cash"
	StrategyInstallment  Strategy = "installment"
	StrategyNone         Strategy = "none"
)

// ResultType is the client-facing discount category.
func (s Strategy) ResultType() string {
	switch s {
	case StrategyPix, StrategyCash:
		return "payment_method"
	case StrategyNone:
		return "none"
	default:
		return string(s)
	}
}

// DiscountCriteria is the per-request input to an evaluation. Ephemeral: it is
// never persisted and exists only for the duration of one calculation.
type DiscountCriteria struct {
	PropertyName    string
	CheckIn         time.Time
	CheckOut        time.Time
	OriginalPrice   float64
	ClientPhone     string
	PaymentMethod   string // "pix" | "cash" | "card" | ""
	BookNow         bool
	ExtendStay      int // extra nights offered on top of the booked stay
	LeadTemperature string
}

// Nights is the booked stay length in whole nights, floored at zero.
func (c DiscountCriteria) Nights() int {
	n := int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// DiscountResult is the outcome of one evaluation. Constructed once per
// request and never mutated after return.
type DiscountResult struct {
	Type          string   `json:"type"`
	Strategy      Strategy `json:"strategy"`
	Percentage    float64  `json:"percentage"`
	Amount        float64  `json:"amount"`
	OriginalPrice float64  `json:"originalPrice"`
	FinalPrice    float64  `json:"finalPrice"`
	Reason        string   `json:"reason"`
	Message       string   `json:"message"`
	Conditions    []string `json:"conditions,omitempty"`
}

// Opportunity describes one enabled discount category for the opportunities
// surface.
type Opportunity struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage"`
}

// Combination is one stacked-discount scenario, capped at the tenant ceiling.
type Combination struct {
	Scenario      string   `json:"scenario"`
	Strategies    []string `json:"strategies"`
	TotalDiscount float64  `json:"totalDiscount"`
	Description   string   `json:"description"`
}

// TipPriority orders coaching tips for display only; it has no numeric meaning.
type TipPriority string

const (
	TipCritical TipPriority = "critical"
	TipHigh     TipPriority = "high"
	TipMedium   TipPriority = "medium"
	TipLow      TipPriority = "low"
)

type NegotiationTip struct {
	Priority TipPriority `json:"priority"`
	Tip      string      `json:"tip"`
}

// OpportunityReport is the full payload of the opportunities surface.
type OpportunityReport struct {
	Opportunities    []Opportunity      `json:"opportunities"`
	BestCombinations []Combination      `json:"bestCombinations"`
	NegotiationTips  []NegotiationTip   `json:"negotiationTips"`
	Summary          OpportunitySummary `json:"summary"`
}

type OpportunitySummary struct {
	TotalOpportunities  int     `json:"totalOpportunities"`
	MaxStackedDiscount  float64 `json:"maxStackedDiscount"`
	TopScenario         string  `json:"topScenario,omitempty"`
	AINegotiationActive bool    `json:"aiNegotiationActive"`
}
