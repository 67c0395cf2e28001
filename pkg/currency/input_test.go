package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		code    string
		wantRaw string
		want    string
		minor   int64
		display string
	}{
		{"grouped with symbol", "$1,234.567", "USD", "1234.56", "1234.56", 123456, "$1,234.56"},
		{"plain integer", "  42 ", "usd", "42", "42", 4200, "$42.00"},
		{"leading zeros", "0007.5", "USD", "7.5", "7.5", 750, "$7.50"},
		{"trailing separator", "15.", "USD", "15.", "15", 1500, "$15.00"},
		{"zero fraction currency", "¥1,234.9", "JPY", "1234", "1234", 1234, "¥1,234"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := Parse(tc.raw, tc.code)
			require.NoError(t, err)
			require.True(t, in.Valid())
			require.Equal(t, tc.wantRaw, in.Raw())
			require.True(t, decimal.RequireFromString(tc.want).Equal(in.Value()), "value %s", in.Value())
			require.Equal(t, tc.minor, in.Minor())
			require.Equal(t, tc.display, in.Display())
		})
	}
}

func TestParse_Negative(t *testing.T) {
	in, err := Parse("-12.5", "USD")
	require.NoError(t, err)
	require.Equal(t, "-12.5", in.Raw())
	require.Equal(t, int64(-1250), in.Minor())
}

func TestParse_Empty(t *testing.T) {
	in, err := Parse("abc", "USD")
	require.ErrorIs(t, err, ErrEmpty)
	require.False(t, in.Valid())
	require.Equal(t, "", in.Display())
}

func TestParse_UnknownCurrency(t *testing.T) {
	_, err := Parse("1", "???")
	require.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestFromValue_RoundTrip(t *testing.T) {
	in, err := FromValue(decimal.RequireFromString("1999.999"), "USD")
	require.NoError(t, err)
	require.Equal(t, "1999.99", in.Raw())

	again, err := Parse(in.Raw(), "USD")
	require.NoError(t, err)
	require.True(t, in.Value().Equal(again.Value()))
	require.Equal(t, in.Display(), again.Display())
}

func TestFromMinor(t *testing.T) {
	in, err := FromMinor(2550, "USD")
	require.NoError(t, err)
	require.Equal(t, "25.50", in.Raw())
	require.Equal(t, "$25.50", in.Display())
}

func TestFormat(t *testing.T) {
	require.Equal(t, "$1,000.00", Format(decimal.NewFromInt(1000), "USD"))
	require.Equal(t, "12.5", Format(decimal.RequireFromString("12.5"), "nope"))
}

func TestParse_OutOfRange(t *testing.T) {
	in, err := Parse("100000000000000000000", "USD")
	require.ErrorIs(t, err, ErrOutOfRange)
	require.False(t, in.Valid())
	require.Equal(t, "", in.Display())

	_, err = FromValue(decimal.RequireFromString("-100000000000000000000"), "USD")
	require.ErrorIs(t, err, ErrOutOfRange)

	// 92233720368547758.07 is the largest USD amount with int64 cents.
	in, err = Parse("92233720368547758.07", "USD")
	require.NoError(t, err)
	require.Equal(t, int64(9223372036854775807), in.Minor())

	_, err = Parse("92233720368547758.08", "USD")
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFormat_OutOfRangeFallsBack(t *testing.T) {
	huge := decimal.RequireFromString("100000000000000000000")
	require.Equal(t, huge.String(), Format(huge, "USD"))
}

func TestParse_CommaCurrency(t *testing.T) {
	in, err := Parse("1.234,5", "BRL")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1234.5").Equal(in.Value()))
	require.Equal(t, "R$1.234,50", in.Display())

	stored, err := FromValue(decimal.RequireFromString("12.5"), "BRL")
	require.NoError(t, err)
	require.Equal(t, "12,50", stored.Raw())
	require.Equal(t, "R$12,50", Format(decimal.RequireFromString("12.5"), "BRL"))
}
