package sqlite

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// Amounts are stored as integer minor units so SUM stays exact.
func toCents(d decimal.Decimal) int64 {
	return d.Shift(domain.AmountScale).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -domain.AmountScale)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}

func optionalDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(*t), Valid: true}
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.UTC)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
