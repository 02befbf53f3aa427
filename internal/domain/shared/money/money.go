package money

import "errors"

var ErrNegativeAmount = errors.New("money: amount cannot be negative")

// Money keeps amounts in integer minor units (cents) to avoid floating point
// issues. The engine is single-currency.
type Money struct {
	Cents int64
}

// New constructs a non-negative Money value.
func New(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{Cents: cents}, nil
}

// Must creates Money and panics on invalid input; useful in tests and fixtures.
func Must(cents int64) Money {
	m, err := New(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Cents: m.Cents * times}
}

// Percent returns the given percentage of the amount, clamped to [0, 100].
func (m Money) Percent(p int) Money {
	p = clampPercent(p)
	if p == 0 {
		return Money{}
	}
	const percentBase = int64(100)
	return Money{Cents: m.Cents * int64(p) / percentBase}
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
