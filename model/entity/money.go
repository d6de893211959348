package entity

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// Money is an exact decimal amount backed by big.Rat. The zero value is 0.
type Money struct {
	amount *big.Rat
}

// NewMoneyFromDecimal parses "19.99", "100", "0.01".
func NewMoneyFromDecimal(decimal string) (Money, error) {
	rat := new(big.Rat)
	if _, ok := rat.SetString(decimal); !ok {
		return Money{}, fmt.Errorf("invalid decimal format: %s", decimal)
	}
	return Money{amount: rat}, nil
}

// MustMoney is NewMoneyFromDecimal for literals.
func MustMoney(decimal string) Money {
	m, err := NewMoneyFromDecimal(decimal)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) rat() *big.Rat {
	if m.amount == nil {
		return new(big.Rat)
	}
	return m.amount
}

// FloatString returns a decimal string with the given precision ("19.99").
func (m Money) FloatString(precision int) string {
	return m.rat().FloatString(precision)
}

func (m Money) String() string {
	return m.FloatString(2)
}

// Float64 may lose precision; display and sorting only.
func (m Money) Float64() float64 {
	f, _ := m.rat().Float64()
	return f
}

func (m Money) Cmp(other Money) int {
	return m.rat().Cmp(other.rat())
}

func (m Money) IsZero() bool {
	return m.rat().Sign() == 0
}

// MarshalJSON writes the amount as a JSON number, like the backend's BigDecimal.
func (m Money) MarshalJSON() ([]byte, error) {
	s := m.rat().FloatString(6)
	// trim trailing zeros but keep at least one decimal digit
	for len(s) > 0 && s[len(s)-1] == '0' && s[len(s)-2] != '.' {
		s = s[:len(s)-1]
	}
	return []byte(s), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*m = Money{}
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	parsed, err := NewMoneyFromDecimal(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMoney accepts the shapes a loosely typed JSON payload can carry.
func ParseMoney(v interface{}) (Money, error) {
	switch val := v.(type) {
	case nil:
		return Money{}, nil
	case Money:
		return val, nil
	case json.Number:
		return NewMoneyFromDecimal(val.String())
	case string:
		if val == "" {
			return Money{}, nil
		}
		return NewMoneyFromDecimal(val)
	case float64:
		return Money{amount: new(big.Rat).SetFloat64(val)}, nil
	case int:
		return Money{amount: new(big.Rat).SetInt64(int64(val))}, nil
	case int64:
		return Money{amount: new(big.Rat).SetInt64(val)}, nil
	default:
		return Money{}, fmt.Errorf("unsupported money value %T", v)
	}
}
