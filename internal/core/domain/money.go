package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point amount with two decimal places, stored in cents.
type Money int64

// MaxMoney is the largest amount representable with ten digits.
const MaxMoney Money = 99_999_999_99

var ErrInvalidMoney = errors.New("invalid money amount")

// ParseMoney parses a decimal string such as "12.5" or "12.50".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidMoney
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, ErrInvalidMoney
	}
	for len(frac) < 2 {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	m := Money(units*100 + cents)
	if m > MaxMoney {
		return 0, ErrInvalidMoney
	}
	return m, nil
}

// MustParseMoney is ParseMoney for literals; it panics on bad input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(fmt.Sprintf("domain: bad money literal %q", s))
	}
	return m
}

// Mul multiplies the amount by a quantity. It fails when the product is
// negative or would exceed MaxMoney.
func (m Money) Mul(qty int) (Money, error) {
	if m < 0 || qty < 0 {
		return 0, ErrInvalidMoney
	}
	if qty == 0 || m == 0 {
		return 0, nil
	}
	if m > MaxMoney/Money(qty) {
		return 0, ErrInvalidMoney
	}
	return m * Money(qty), nil
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 { return int64(m) }

func (m Money) String() string {
	if m < 0 {
		return "-" + (-m).String()
	}
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// MarshalJSON renders the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
