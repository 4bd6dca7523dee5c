package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// MaxEstTotal - верхняя граница оценочной стоимости заказа.
var MaxEstTotal = decimal.NewFromInt(1000)

type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney округляет сумму до центов и проверяет диапазон.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма не может быть отрицательной")
	}
	if amount.GreaterThan(MaxEstTotal) {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма превышает допустимый предел")
	}
	if currency == "" {
		currency = "USD"
	}
	return Money{Amount: amount.Round(2), Currency: currency}, nil
}

// ParseMoney разбирает строковую сумму вида "12.50".
func ParseMoney(raw string) (Money, error) {
	if raw == "" {
		return Money{Amount: decimal.Zero, Currency: "USD"}, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "некорректный формат суммы")
	}
	return NewMoney(amount, "USD")
}

func (m Money) String() string {
	return m.Amount.StringFixed(2)
}
