package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var nonDecimalChars = regexp.MustCompile(`[^0-9.,-]`)

// cleanField trims a raw field and removes a single layer of matching
// surrounding quotes. An empty result is reported as absent (nil). It
// never fails.
func cleanField(raw string) *string {
	cleaned := strings.TrimSpace(raw)
	if len(cleaned) >= 2 {
		if (cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"') ||
			(cleaned[0] == '\'' && cleaned[len(cleaned)-1] == '\'') {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
	}
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// parseDecimal converts a locale-formatted amount ("1.234,56", "R$ 12,00")
// into an exact decimal. Malformed input degrades to an absent value
// rather than failing the row.
func parseDecimal(raw string) decimal.NullDecimal {
	cleaned := cleanField(raw)
	if cleaned == nil {
		return decimal.NullDecimal{}
	}

	normalized := nonDecimalChars.ReplaceAllString(*cleaned, "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}
}

func parseInt(raw string) *int {
	cleaned := cleanField(raw)
	if cleaned == nil {
		return nil
	}
	value, err := strconv.Atoi(*cleaned)
	if err != nil {
		return nil
	}
	return &value
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// parseDate accepts the date formats seen in the source files. An
// unparseable date is absent, not an error.
func parseDate(raw string) *datatypes.Date {
	cleaned := cleanField(raw)
	if cleaned == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, *cleaned); err == nil {
			date := datatypes.Date(parsed)
			return &date
		}
	}
	return nil
}
