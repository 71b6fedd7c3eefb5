package analytics_test

import (
	"time"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func fee(n int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(n)) }
