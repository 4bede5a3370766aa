package app

import (
	"fmt"

	"staydeal/internal/domain"
)

// ComposeMessage renders the client-facing negotiation pitch for a computed
// result. Pure: no I/O, no side effects. Copy is pt-BR, matching the market
// the engine serves.
func ComposeMessage(st domain.Strategy, res domain.DiscountResult, c domain.DiscountCriteria, s domain.NegotiationSettings) string {
	switch st {
	case domain.StrategyPix:
		return fmt.Sprintf(
			"Pagando via PIX você garante %.1f%% de desconto: de R$ %.2f por R$ %.2f à vista.",
			res.Percentage, res.OriginalPrice, res.FinalPrice)

	case domain.StrategyExtendedStay:
		return fmt.Sprintf(
			"Estendendo sua estadia em %d diária(s) você ganha %.1f%% de desconto: o total fica em R$ %.2f (economia de R$ %.2f).",
			c.ExtendStay, res.Percentage, res.FinalPrice, res.Amount)

	case domain.StrategyBookNow:
		return fmt.Sprintf(
			"Confirmando a reserva agora você ganha %.1f%% de desconto: R$ %.2f em vez de R$ %.2f. A oferta vale por %d horas.",
			res.Percentage, res.FinalPrice, res.OriginalPrice, s.BookNowTimeLimit)

	case domain.StrategyCash:
		return fmt.Sprintf(
			"Pagamento em dinheiro tem %.1f%% de desconto: o total sai por R$ %.2f.",
			res.Percentage, res.FinalPrice)

	case domain.StrategyInstallment:
		return fmt.Sprintf(
			"Você pode parcelar em até %dx no cartão (parcela mínima de R$ %.2f). O total permanece R$ %.2f.",
			s.MaxInstallments, s.MinInstallmentValue, res.OriginalPrice)

	case domain.StrategyNone:
		return "No momento não temos descontos disponíveis para estas datas, mas o valor já é o nosso melhor preço."

	default:
		// Unrecognized strategy: keep the pitch generic rather than failing.
		return fmt.Sprintf("Temos uma condição especial para sua reserva: R$ %.2f.", res.FinalPrice)
	}
}
