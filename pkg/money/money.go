// Package money parses and formats display-string fares.
//
// Search providers return prices as display text ("$214", "$1,024"). The
// canonical representation used for all comparisons is an integer count of
// major currency units; nothing in the engine does fractional arithmetic.
package money

import (
	"errors"
	"strconv"
	"strings"
)

// Amount is a price in whole major currency units (e.g. dollars).
type Amount int64

// ErrUnparsable is returned when a display string contains no usable price.
var ErrUnparsable = errors.New("money: unparsable price string")

// Parse converts a display price such as "$214" or "1,024" into an Amount.
// Currency symbols, thousands separators, and surrounding text are stripped;
// a fractional part is truncated.
func Parse(s string) (Amount, error) {
	var b strings.Builder
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
		case r == ',':
			// thousands separator
		case r == '.':
			if seenDigit {
				// truncate cents
				return finish(b.String())
			}
		default:
			if seenDigit {
				return finish(b.String())
			}
		}
	}
	return finish(b.String())
}

func finish(digits string) (Amount, error) {
	if digits == "" {
		return 0, ErrUnparsable
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrUnparsable
	}
	return Amount(n), nil
}

// Format renders an Amount as a dollar display string with thousands
// separators, e.g. Format(1024) == "$1,024".
func (a Amount) Format() string {
	negative := a < 0
	if negative {
		a = -a
	}

	s := strconv.FormatInt(int64(a), 10)
	formatted := addThousandsSeparator(s, ",")

	result := "$" + formatted
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
