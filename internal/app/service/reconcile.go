package service

import "github.com/shopspring/decimal"

// Абсолютный допуск для сверки сумм (валютная точность, не относительная)
const amountTolerance = "0.01"

// lineTotal стоимость одной позиции: количество * цена за единицу
func lineTotal(item LineItemInput) decimal.Decimal {
	return decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// reconcileAmount сверяет заявленную сумму с суммой по позициям.
// Вызывается только при создании заявки, после проверки полей:
// отрицательные количества и цены сюда не попадают.
func reconcileAmount(requestedAmount float64, items []LineItemInput) error {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(lineTotal(item))
	}

	requested := decimal.NewFromFloat(requestedAmount)
	tolerance := decimal.RequireFromString(amountTolerance)
	if requested.Sub(sum).Abs().GreaterThan(tolerance) {
		return &AmountMismatchError{
			Expected: sum.InexactFloat64(),
			Actual:   requestedAmount,
		}
	}
	return nil
}
