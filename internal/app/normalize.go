package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"staydeal/internal/domain"
)

/********** field aliases (single source of truth) **********/

// Stored documents and the platform payload drifted over time; both spellings
// are accepted on read, only the canonical one is written.
var settingsAliases = map[string][]string{
	"allowAINegotiation":        {"allowAINegotiation", "allow_ai_negotiation", "aiNegotiationEnabled"},
	"pixDiscountEnabled":        {"pixDiscountEnabled", "pix_discount_enabled"},
	"pixDiscountPercentage":     {"pixDiscountPercentage", "pix_discount_percentage", "pixDiscount"},
	"cashDiscountEnabled":       {"cashDiscountEnabled", "cash_discount_enabled"},
	"cashDiscountPercentage":    {"cashDiscountPercentage", "cash_discount_percentage", "cashDiscount"},
	"installmentEnabled":        {"installmentEnabled", "installment_enabled"},
	"maxInstallments":           {"maxInstallments", "max_installments"},
	"minInstallmentValue":       {"minInstallmentValue", "min_installment_value"},
	"extendedStayRules":         {"extendedStayRules", "extended_stay_rules"},
	"earlyBookingRules":         {"earlyBookingRules", "early_booking_rules"},
	"lastMinuteRules":           {"lastMinuteRules", "last_minute_rules"},
	"bookNowDiscountEnabled":    {"bookNowDiscountEnabled", "book_now_discount_enabled"},
	"bookNowDiscountPercentage": {"bookNowDiscountPercentage", "book_now_discount_percentage"},
	"bookNowTimeLimit":          {"bookNowTimeLimit", "book_now_time_limit"},
	"maxDiscountPercentage":     {"maxDiscountPercentage", "max_discount_percentage"},
	"minPriceAfterDiscount":     {"minPriceAfterDiscount", "min_price_after_discount"},
}

/********** tiny helpers **********/

func lookupField(m map[string]any, key string) (any, bool) {
	for _, k := range settingsAliases[key] {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// asFloat coerces float64/int/json strings like "8,5". Settings written by the
// platform UI occasionally carry numbers as strings.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getBool(m map[string]any, key string, def bool) bool {
	if v, ok := lookupField(m, key); ok {
		if b, ok := asBool(v); ok {
			return b
		}
	}
	return def
}

func getFloat(m map[string]any, key string, def float64) float64 {
	if v, ok := lookupField(m, key); ok {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return def
}

func getInt(m map[string]any, key string, def int) int {
	if v, ok := lookupField(m, key); ok {
		if f, ok := asFloat(v); ok {
			return int(f)
		}
	}
	return def
}

// entryFloat/entryInt read a field directly off a rule-list entry. The tier
// field names are stable across document versions, so no alias table applies.
func entryFloat(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return def
}

func entryInt(m map[string]any, key string, def int) int {
	return int(entryFloat(m, key, float64(def)))
}

func getRuleList(m map[string]any, key string) ([]map[string]any, bool) {
	v, ok := lookupField(m, key)
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if em, ok := e.(map[string]any); ok {
			out = append(out, em)
		}
	}
	return out, true
}

/********** normalization **********/

// NormalizeSettings turns a stored settings document into a totally defined
// NegotiationSettings. Every field absent or malformed in the document takes
// the value from domain.DefaultSettings. Downstream code (evaluator,
// combinator, composer) assumes total definedness and does no re-checking.
func NormalizeSettings(doc []byte) domain.NegotiationSettings {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil || m == nil {
		return domain.DefaultSettings()
	}
	return NormalizeSettingsMap(m)
}

// NormalizeSettingsMap is the map form, used for platform payloads that arrive
// already decoded.
func NormalizeSettingsMap(m map[string]any) domain.NegotiationSettings {
	def := domain.DefaultSettings()
	ns := domain.NegotiationSettings{
		AllowAINegotiation: getBool(m, "allowAINegotiation", def.AllowAINegotiation),

		PixDiscountEnabled:    getBool(m, "pixDiscountEnabled", def.PixDiscountEnabled),
		PixDiscountPercentage: getFloat(m, "pixDiscountPercentage", def.PixDiscountPercentage),

		CashDiscountEnabled:    getBool(m, "cashDiscountEnabled", def.CashDiscountEnabled),
		CashDiscountPercentage: getFloat(m, "cashDiscountPercentage", def.CashDiscountPercentage),

		InstallmentEnabled:  getBool(m, "installmentEnabled", def.InstallmentEnabled),
		MaxInstallments:     getInt(m, "maxInstallments", def.MaxInstallments),
		MinInstallmentValue: getFloat(m, "minInstallmentValue", def.MinInstallmentValue),

		BookNowDiscountEnabled:    getBool(m, "bookNowDiscountEnabled", def.BookNowDiscountEnabled),
		BookNowDiscountPercentage: getFloat(m, "bookNowDiscountPercentage", def.BookNowDiscountPercentage),
		BookNowTimeLimit:          getInt(m, "bookNowTimeLimit", def.BookNowTimeLimit),

		MaxDiscountPercentage: getFloat(m, "maxDiscountPercentage", def.MaxDiscountPercentage),
		MinPriceAfterDiscount: getFloat(m, "minPriceAfterDiscount", def.MinPriceAfterDiscount),
	}

	ns.ExtendedStayRules = def.ExtendedStayRules
	if list, ok := getRuleList(m, "extendedStayRules"); ok {
		rules := make([]domain.StayRule, 0, len(list))
		for _, e := range list {
			rules = append(rules, domain.StayRule{
				MinDays:            entryInt(e, "minDays", 0),
				DiscountPercentage: entryFloat(e, "discountPercentage", 0),
			})
		}
		ns.ExtendedStayRules = rules
	}

	ns.EarlyBookingRules = def.EarlyBookingRules
	if list, ok := getRuleList(m, "earlyBookingRules"); ok {
		rules := make([]domain.EarlyBookingRule, 0, len(list))
		for _, e := range list {
			rules = append(rules, domain.EarlyBookingRule{
				DaysInAdvance:      entryInt(e, "daysInAdvance", 0),
				DiscountPercentage: entryFloat(e, "discountPercentage", 0),
			})
		}
		ns.EarlyBookingRules = rules
	}

	ns.LastMinuteRules = def.LastMinuteRules
	if list, ok := getRuleList(m, "lastMinuteRules"); ok {
		rules := make([]domain.LastMinuteRule, 0, len(list))
		for _, e := range list {
			rules = append(rules, domain.LastMinuteRule{
				DaysBeforeCheckIn:  entryInt(e, "daysBeforeCheckIn", 0),
				DiscountPercentage: entryFloat(e, "discountPercentage", 0),
			})
		}
		ns.LastMinuteRules = rules
	}

	return ns
}
