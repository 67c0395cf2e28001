// Package currency normalizes money typed into a form field.
//
// An Input keeps three views of the same amount: the cleaned raw text shown
// while editing, the formatted display string and the canonical decimal value.
package currency

import (
	"math"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrEmpty           = errors.New("amount is empty")
	ErrOutOfRange      = errors.New("amount out of range")
)

var (
	minMinor = decimal.NewFromInt(math.MinInt64)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// checkRange rejects amounts whose minor units do not fit an int64.
func checkRange(value decimal.Decimal, cur *money.Currency) error {
	minor := value.Shift(int32(cur.Fraction))
	if minor.LessThan(minMinor) || minor.GreaterThan(maxMinor) {
		return errors.Wrapf(ErrOutOfRange, "%s %s", value.String(), cur.Code)
	}
	return nil
}

type Input struct {
	code     string
	currency *money.Currency
	raw      string
	value    decimal.Decimal
	valid    bool
}

func lookup(code string) (*money.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c := money.GetCurrency(code)
	if c == nil {
		return nil, errors.Wrapf(ErrUnknownCurrency, "code %q", code)
	}
	return c, nil
}

// Parse cleans user input: grouping marks, symbols and letters are dropped,
// one decimal separator is kept and the fraction is truncated to the
// currency's minor unit.
func Parse(raw, code string) (Input, error) {
	cur, err := lookup(code)
	if err != nil {
		return Input{}, err
	}
	in := Input{code: cur.Code, currency: cur}

	var (
		intPart   strings.Builder
		fracPart  strings.Builder
		negative  bool
		seenDigit bool
		seenSep   bool
	)
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r):
			seenDigit = true
			if seenSep {
				if fracPart.Len() < cur.Fraction {
					fracPart.WriteRune(r)
				}
				continue
			}
			intPart.WriteRune(r)
		case r == '-' && !seenDigit && !seenSep:
			negative = true
		case isDecimalSeparator(r, cur) && !seenSep:
			seenSep = true
		}
	}
	if !seenDigit {
		return in, ErrEmpty
	}

	digits := strings.TrimLeft(intPart.String(), "0")
	if digits == "" {
		digits = "0"
	}
	canonical := digits
	display := digits
	if seenSep && cur.Fraction > 0 {
		canonical += "." + fracPart.String()
		display += cur.Decimal + fracPart.String()
	}
	if negative {
		canonical = "-" + canonical
		display = "-" + display
	}

	value, err := decimal.NewFromString(strings.TrimSuffix(canonical, "."))
	if err != nil {
		return in, errors.Wrap(err, "parse amount")
	}
	if err := checkRange(value, cur); err != nil {
		return in, err
	}
	in.raw = display
	in.value = value
	in.valid = true
	return in, nil
}

func isDecimalSeparator(r rune, cur *money.Currency) bool {
	if string(r) == cur.Decimal {
		return true
	}
	return r == '.' && cur.Thousand != "."
}

// FromValue builds an Input from a canonical amount.
func FromValue(value decimal.Decimal, code string) (Input, error) {
	cur, err := lookup(code)
	if err != nil {
		return Input{}, err
	}
	value = value.Truncate(int32(cur.Fraction))
	if err := checkRange(value, cur); err != nil {
		return Input{}, err
	}
	raw := value.StringFixed(int32(cur.Fraction))
	if cur.Decimal != "." {
		raw = strings.Replace(raw, ".", cur.Decimal, 1)
	}
	return Input{
		code:     cur.Code,
		currency: cur,
		raw:      raw,
		value:    value,
		valid:    true,
	}, nil
}

// FromMinor builds an Input from an amount in minor units.
func FromMinor(minor int64, code string) (Input, error) {
	cur, err := lookup(code)
	if err != nil {
		return Input{}, err
	}
	return FromValue(decimal.New(minor, -int32(cur.Fraction)), cur.Code)
}

func (i Input) Code() string {
	return i.code
}

func (i Input) Raw() string {
	return i.raw
}

func (i Input) Valid() bool {
	return i.valid
}

func (i Input) Value() decimal.Decimal {
	return i.value
}

// Minor returns the amount in the currency's minor units. Parse and
// FromValue guarantee it fits an int64.
func (i Input) Minor() int64 {
	if i.currency == nil {
		return 0
	}
	return i.value.Shift(int32(i.currency.Fraction)).IntPart()
}

// Display formats the amount with grouping and symbol. Invalid input
// displays as the empty string.
func (i Input) Display() string {
	if !i.valid {
		return ""
	}
	return money.New(i.Minor(), i.code).Display()
}

// Format is the display form of value in the given currency.
// Unknown currencies fall back to the plain decimal.
func Format(value decimal.Decimal, code string) string {
	in, err := FromValue(value, code)
	if err != nil {
		return value.String()
	}
	return in.Display()
}
