package app

import (
	"fmt"
	"math"

	"staydeal/internal/domain"
)

// probeOutcome is what a strategy probe yields when it matches.
type probeOutcome struct {
	percentage float64
	reason     string
	conditions []string
}

// strategyProbe is one variant of the evaluation tagged union. Probes are
// evaluated in slice order, first match wins; precedence is data here, not
// if/else ordering.
type strategyProbe struct {
	strategy domain.Strategy
	apply    func(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool)
}

var probes = []strategyProbe{
	{domain.StrategyPix, applyPix},
	{domain.StrategyExtendedStay, applyExtendedStay},
	{domain.StrategyBookNow, applyBookNow},
	{domain.StrategyCash, applyCash},
	{domain.StrategyInstallment, applyInstallment},
}

// Evaluate selects exactly one discount strategy for the criteria, first match
// wins. The order is deliberately NOT best-value: a fixed precedence keeps
// negotiation scripts predictable for the human agent reading the result.
//
// Precondition: criteria.OriginalPrice > 0, enforced at the HTTP boundary.
// Evaluation is pure; identical inputs yield identical results.
func Evaluate(c domain.DiscountCriteria, s domain.NegotiationSettings) domain.DiscountResult {
	if !s.AllowAINegotiation {
		return noneResult(c, s, "negociação automática desativada para esta conta")
	}
	for _, p := range probes {
		if out, ok := p.apply(c, s); ok {
			return finalize(p.strategy, out, c, s)
		}
	}
	return noneResult(c, s, "nenhum desconto aplicável aos critérios informados")
}

/********** probes **********/

func applyPix(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool) {
	if c.PaymentMethod != "pix" || !s.PixDiscountEnabled {
		return probeOutcome{}, false
	}
	return probeOutcome{
		percentage: s.PixDiscountPercentage,
		reason:     "pagamento à vista via PIX",
	}, true
}

func applyExtendedStay(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool) {
	if c.ExtendStay <= 0 || len(s.ExtendedStayRules) == 0 {
		return probeOutcome{}, false
	}
	totalDays := c.Nights() + c.ExtendStay
	// Among qualifying tiers pick the highest percentage, not the highest
	// threshold. No qualifying tier falls through to the next strategy.
	best, found := 0.0, false
	for _, r := range s.ExtendedStayRules {
		if totalDays >= r.MinDays && r.DiscountPercentage > best {
			best, found = r.DiscountPercentage, true
		}
	}
	if !found {
		return probeOutcome{}, false
	}
	return probeOutcome{
		percentage: best,
		reason:     fmt.Sprintf("estadia estendida para %d diárias", totalDays),
	}, true
}

func applyBookNow(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool) {
	if !c.BookNow || !s.BookNowDiscountEnabled {
		return probeOutcome{}, false
	}
	return probeOutcome{
		percentage: s.BookNowDiscountPercentage,
		reason:     "reserva imediata",
		conditions: []string{fmt.Sprintf("Oferta válida por %d horas", s.BookNowTimeLimit)},
	}, true
}

func applyCash(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool) {
	if c.PaymentMethod != "cash" || !s.CashDiscountEnabled {
		return probeOutcome{}, false
	}
	return probeOutcome{
		percentage: s.CashDiscountPercentage,
		reason:     "pagamento em dinheiro",
	}, true
}

// Card yields zero percent: it communicates financing terms, not a discount.
func applyInstallment(c domain.DiscountCriteria, s domain.NegotiationSettings) (probeOutcome, bool) {
	if c.PaymentMethod != "card" || !s.InstallmentEnabled {
		return probeOutcome{}, false
	}
	return probeOutcome{
		percentage: 0,
		reason:     "parcelamento no cartão",
		conditions: []string{
			fmt.Sprintf("Até %dx no cartão", s.MaxInstallments),
			fmt.Sprintf("Parcela mínima de R$ %.2f", s.MinInstallmentValue),
		},
	}, true
}

/********** clamps **********/

// finalize applies the tenant ceiling, computes money amounts, then enforces
// the price floor. When the floor bites, percentage and amount are recomputed
// from the clamped price so amount = originalPrice - finalPrice always holds.
func finalize(st domain.Strategy, out probeOutcome, c domain.DiscountCriteria, s domain.NegotiationSettings) domain.DiscountResult {
	pct := out.percentage
	reason := out.reason
	if pct > s.MaxDiscountPercentage {
		pct = s.MaxDiscountPercentage
		reason += fmt.Sprintf(" (limitado ao teto de %.1f%%)", s.MaxDiscountPercentage)
	}

	amount := round2(c.OriginalPrice * pct / 100)
	final := round2(c.OriginalPrice - amount)

	if s.MinPriceAfterDiscount > 0 && final < s.MinPriceAfterDiscount {
		final = s.MinPriceAfterDiscount
		amount = round2(c.OriginalPrice - final)
		pct = round2(amount / c.OriginalPrice * 100)
		reason += fmt.Sprintf(" (ajustado ao preço mínimo de R$ %.2f)", s.MinPriceAfterDiscount)
	}

	res := domain.DiscountResult{
		Type:          st.ResultType(),
		Strategy:      st,
		Percentage:    pct,
		Amount:        amount,
		OriginalPrice: c.OriginalPrice,
		FinalPrice:    final,
		Reason:        reason,
		Conditions:    out.conditions,
	}
	res.Message = ComposeMessage(st, res, c, s)
	return res
}

func noneResult(c domain.DiscountCriteria, s domain.NegotiationSettings, reason string) domain.DiscountResult {
	res := domain.DiscountResult{
		Type:          domain.StrategyNone.ResultType(),
		Strategy:      domain.StrategyNone,
		OriginalPrice: c.OriginalPrice,
		FinalPrice:    c.OriginalPrice,
		Reason:        reason,
	}
	res.Message = ComposeMessage(domain.StrategyNone, res, c, s)
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
