package app

import (
	"fmt"
	"sort"

	"staydeal/internal/domain"
)

// The opportunities surface does not optimize over all category permutations.
// It evaluates five illustrative scenario templates against the tenant's
// configuration, stacking category percentages additively and capping each
// total at the tenant ceiling. A scenario whose required category is disabled
// is omitted from the output, not zeroed.

type category string

const (
	catPix          category = "pix"
	catCash         category = "cash"
	catExtendedStay category = "extended_stay"
	catEarlyBooking category = "early_booking"
	catLastMinute   category = "last_minute"
	catBookNow      category = "book_now"
	catInstallment  category = "installment"
)

type scenario struct {
	name       string
	desc       string
	categories []category
}

var scenarios = []scenario{
	{"immediate_booking", "Fechamento imediato com pagamento via PIX", []category{catPix, catBookNow}},
	{"extended_stay", "Estadia estendida paga via PIX", []category{catPix, catExtendedStay}},
	{"early_booking", "Reserva antecipada paga via PIX", []category{catPix, catEarlyBooking}},
	{"last_minute", "Fechamento imediato de vaga de última hora", []category{catLastMinute, catBookNow}},
	{"maximum_stack", "Estadia estendida com PIX e fechamento imediato", []category{catPix, catExtendedStay, catBookNow}},
}

// BuildOpportunityReport enumerates the enabled discount categories, ranks the
// stacked scenarios and attaches coaching tips. Pure; settings are assumed
// totally defined (normalization boundary guarantee).
func BuildOpportunityReport(s domain.NegotiationSettings) domain.OpportunityReport {
	opps := enumerateOpportunities(s)
	combos := bestCombinations(s)
	tips := NegotiationTips(s)

	sum := domain.OpportunitySummary{
		TotalOpportunities:  len(opps),
		AINegotiationActive: s.AllowAINegotiation,
	}
	if len(combos) > 0 {
		sum.MaxStackedDiscount = combos[0].TotalDiscount
		sum.TopScenario = combos[0].Scenario
	}

	return domain.OpportunityReport{
		Opportunities:    opps,
		BestCombinations: combos,
		NegotiationTips:  tips,
		Summary:          sum,
	}
}

// categoryDiscount returns the stackable percentage for a category, or false
// when the category is disabled for this tenant. Tier lists contribute their
// best percentage.
func categoryDiscount(s domain.NegotiationSettings, cat category) (float64, bool) {
	switch cat {
	case catPix:
		return s.PixDiscountPercentage, s.PixDiscountEnabled
	case catCash:
		return s.CashDiscountPercentage, s.CashDiscountEnabled
	case catBookNow:
		return s.BookNowDiscountPercentage, s.BookNowDiscountEnabled
	case catInstallment:
		return 0, s.InstallmentEnabled
	case catExtendedStay:
		best, ok := 0.0, false
		for _, r := range s.ExtendedStayRules {
			if r.DiscountPercentage > best {
				best, ok = r.DiscountPercentage, true
			}
		}
		return best, ok
	case catEarlyBooking:
		best, ok := 0.0, false
		for _, r := range s.EarlyBookingRules {
			if r.DiscountPercentage > best {
				best, ok = r.DiscountPercentage, true
			}
		}
		return best, ok
	case catLastMinute:
		best, ok := 0.0, false
		for _, r := range s.LastMinuteRules {
			if r.DiscountPercentage > best {
				best, ok = r.DiscountPercentage, true
			}
		}
		return best, ok
	}
	return 0, false
}

func enumerateOpportunities(s domain.NegotiationSettings) []domain.Opportunity {
	var out []domain.Opportunity
	add := func(cat category, desc string) {
		pct, ok := categoryDiscount(s, cat)
		if !ok {
			return
		}
		out = append(out, domain.Opportunity{Type: string(cat), Description: desc, Percentage: pct})
	}

	add(catPix, "Desconto para pagamento à vista via PIX")
	add(catCash, "Desconto para pagamento em dinheiro")
	add(catExtendedStay, "Desconto progressivo por estadia estendida")
	add(catEarlyBooking, "Desconto para reservas antecipadas")
	add(catLastMinute, "Desconto para vagas de última hora")
	add(catBookNow, "Desconto por confirmação imediata da reserva")
	if s.InstallmentEnabled {
		out = append(out, domain.Opportunity{
			Type:        string(catInstallment),
			Description: fmt.Sprintf("Parcelamento em até %dx (sem desconto, parcela mínima R$ %.2f)", s.MaxInstallments, s.MinInstallmentValue),
			Percentage:  0,
		})
	}
	return out
}

func bestCombinations(s domain.NegotiationSettings) []domain.Combination {
	var out []domain.Combination
	for _, sc := range scenarios {
		total := 0.0
		strategies := make([]string, 0, len(sc.categories))
		ok := true
		for _, cat := range sc.categories {
			pct, enabled := categoryDiscount(s, cat)
			if !enabled {
				ok = false
				break
			}
			total += pct
			strategies = append(strategies, string(cat))
		}
		if !ok {
			continue
		}
		if total > s.MaxDiscountPercentage {
			total = s.MaxDiscountPercentage
		}
		out = append(out, domain.Combination{
			Scenario:      sc.name,
			Strategies:    strategies,
			TotalDiscount: round2(total),
			Description:   sc.desc,
		})
	}
	// Descending by total; stable so equal totals keep template order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalDiscount > out[j].TotalDiscount })
	return out
}
