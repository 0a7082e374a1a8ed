package domain

import (
	"fmt"
	"math/big"
)

// Amount is a reward-token balance. Reward pools are denominated in the
// smallest unit of the seed token, which can exceed the int64 range, so all
// arithmetic goes through math/big. Amounts are never negative.
type Amount struct {
	i big.Int
}

// NewAmount creates an Amount from a non-negative int64.
func NewAmount(v int64) *Amount {
	if v < 0 {
		v = 0
	}
	a := &Amount{}
	a.i.SetInt64(v)
	return a
}

// ParseAmount parses a non-negative decimal string into an Amount.
func ParseAmount(s string) (*Amount, error) {
	a := &Amount{}
	if _, ok := a.i.SetString(s, 10); !ok {
		return nil, fmt.Errorf("%w: malformed amount %q", ErrInvalidAmount, s)
	}
	if a.i.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}
	return a, nil
}

// AmountFromBig wraps a big.Int value, copying it. Negative values clamp to
// zero; callers are expected to guard subtractions themselves.
func AmountFromBig(v *big.Int) *Amount {
	a := &Amount{}
	if v.Sign() > 0 {
		a.i.Set(v)
	}
	return a
}

// BigInt returns a copy of the underlying integer.
func (a *Amount) BigInt() *big.Int {
	return new(big.Int).Set(&a.i)
}

// Clone returns an independent copy.
func (a *Amount) Clone() *Amount {
	return AmountFromBig(&a.i)
}

// Cmp compares a against b: -1 if a < b, 0 if equal, 1 if a > b.
func (a *Amount) Cmp(b *Amount) int {
	return a.i.Cmp(&b.i)
}

// IsZero reports whether the amount is zero.
func (a *Amount) IsZero() bool {
	return a.i.Sign() == 0
}

// Add returns a + b.
func (a *Amount) Add(b *Amount) *Amount {
	sum := new(big.Int).Add(&a.i, &b.i)
	return AmountFromBig(sum)
}

// Sub returns a - b. The result saturates at zero; ledger code checks
// Cmp before subtracting.
func (a *Amount) Sub(b *Amount) *Amount {
	diff := new(big.Int).Sub(&a.i, &b.i)
	return AmountFromBig(diff)
}

// String renders the amount as a decimal string.
func (a *Amount) String() string {
	return a.i.String()
}

// MarshalJSON renders the amount as a JSON decimal string, mirroring the
// wire convention for 128-bit balances.
func (a *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.i.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string or a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	a.i.Set(&parsed.i)
	return nil
}
