package app

import (
	"fmt"

	"staydeal/internal/domain"
)

// NegotiationTips produces coaching guidance for the human or AI negotiator,
// conditioned on which categories the tenant enabled. Priorities order the
// client-side display only.
func NegotiationTips(s domain.NegotiationSettings) []domain.NegotiationTip {
	var tips []domain.NegotiationTip
	add := func(p domain.TipPriority, tip string) {
		tips = append(tips, domain.NegotiationTip{Priority: p, Tip: tip})
	}

	if !s.AllowAINegotiation {
		add(domain.TipCritical, "A negociação automática está desativada: nenhum desconto será oferecido até reativá-la nas configurações.")
	}
	if s.PixDiscountEnabled {
		add(domain.TipHigh, fmt.Sprintf("Abra a negociação oferecendo o PIX: %.1f%% de desconto à vista é o argumento com melhor conversão.", s.PixDiscountPercentage))
	}
	if s.BookNowDiscountEnabled {
		add(domain.TipHigh, fmt.Sprintf("Use urgência com moderação: o desconto de confirmação imediata expira em %d horas.", s.BookNowTimeLimit))
	}
	if len(s.ExtendedStayRules) > 0 {
		add(domain.TipMedium, "Quando o hóspede hesitar no preço, proponha diárias extras: estadias mais longas liberam descontos maiores.")
	}
	if s.InstallmentEnabled {
		add(domain.TipMedium, fmt.Sprintf("Para leads sensíveis ao valor total, ofereça o parcelamento em até %dx antes de qualquer desconto.", s.MaxInstallments))
	}
	if len(s.LastMinuteRules) > 0 {
		add(domain.TipMedium, "Datas próximas valem menos amanhã: aplique o desconto de última hora em vez de perder a vaga.")
	}
	add(domain.TipLow, fmt.Sprintf("Nunca combine ofertas acima do teto de %.1f%%; o sistema limita automaticamente, mas prometer mais quebra a confiança.", s.MaxDiscountPercentage))
	if s.MinPriceAfterDiscount > 0 {
		add(domain.TipLow, fmt.Sprintf("O preço final nunca ficará abaixo de R$ %.2f; não sinalize flexibilidade além disso.", s.MinPriceAfterDiscount))
	}
	return tips
}
