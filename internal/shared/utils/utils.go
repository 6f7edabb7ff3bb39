package utils

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

func ParseStringToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Round1 rounds to one decimal place, used for rating averages
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Ptr[T any](v T) *T {
	return &v
}

// JoinWithAnd joins a slice of clauses with the AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of clauses with the OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}
