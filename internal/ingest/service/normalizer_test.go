package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{name: "plain", in: "ALIMENTACAO", want: strPtr("ALIMENTACAO")},
		{name: "surrounding whitespace", in: "  SP  ", want: strPtr("SP")},
		{name: "double quoted", in: `"POSTO XYZ"`, want: strPtr("POSTO XYZ")},
		{name: "single quoted", in: "'POSTO XYZ'", want: strPtr("POSTO XYZ")},
		{name: "quotes then whitespace inside", in: `" POSTO "`, want: strPtr("POSTO")},
		{name: "inner quote kept", in: `PO"STO`, want: strPtr(`PO"STO`)},
		{name: "empty", in: "", want: nil},
		{name: "whitespace only", in: "   ", want: nil},
		{name: "quotes only", in: `""`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanField(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{name: "plain comma", in: "123,45", want: "123.45", valid: true},
		{name: "thousand separators", in: "1.234,56", want: "1.234.56", valid: false},
		{name: "currency prefix", in: "R$ 250,00", want: "250.00", valid: true},
		{name: "negative", in: "-99,90", want: "-99.90", valid: true},
		{name: "dot decimal", in: "42.50", want: "42.50", valid: true},
		{name: "integer", in: "1000", want: "1000", valid: true},
		{name: "garbage", in: "abc", valid: false},
		{name: "empty", in: "", valid: false},
		{name: "quoted", in: `"15,00"`, want: "15.00", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDecimal(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	assert.Nil(t, parseInt(""))
	assert.Nil(t, parseInt("abc"))
	assert.Nil(t, parseInt("12.5"))

	got := parseInt(" 2023 ")
	require.NotNil(t, got)
	assert.Equal(t, 2023, *got)
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("not-a-date"))

	for _, in := range []string{"2023-05-10", "2023-05-10T14:30:00", "10/05/2023"} {
		got := parseDate(in)
		require.NotNil(t, got, in)
		assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), time.Time(*got).Format("2006-01-02"))
	}
}

func strPtr(s string) *string { return &s }
