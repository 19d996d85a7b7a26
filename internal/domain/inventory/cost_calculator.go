package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante no es positivo devuelve el costo de la entrada.
func WeightedAverageCost(stockQty, stockCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if stockQty.IsNegative() {
		stockQty = decimal.Zero
	}
	total := stockQty.Add(inQty)
	if !total.IsPositive() {
		return inCost
	}
	num := stockQty.Mul(stockCost).Add(inQty.Mul(inCost))
	return num.DivRound(total, 4)
}
