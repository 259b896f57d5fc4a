package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Amount is an unsigned 256-bit token quantity expressed in base units.
// Arithmetic truncates toward zero unless the method says otherwise.
type Amount struct {
	v uint256.Int
}

const decimals = 18

var (
	decimalBase = NewAmount(1_000_000_000_000_000_000)
	maxAmount   = Amount{v: *new(uint256.Int).SetAllOne()}
)

func NewAmount(u uint64) Amount {
	var a Amount
	a.v.SetUint64(u)
	return a
}

func ZeroAmount() Amount {
	return Amount{}
}

// MaxAmount is the largest representable amount, used for unlimited approvals.
func MaxAmount() Amount {
	return maxAmount
}

func AmountFromString(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{v: *v}, nil
}

func MustAmount(s string) Amount {
	a, err := AmountFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Units returns n whole tokens scaled by 18 decimals.
func Units(n uint64) Amount {
	return NewAmount(n).Mul(decimalBase)
}

func (a Amount) IsZero() bool { return a.v.IsZero() }

func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

func (a Amount) Lt(b Amount) bool { return a.v.Lt(&b.v) }

func (a Amount) Gt(b Amount) bool { return a.v.Gt(&b.v) }

func (a Amount) Eq(b Amount) bool { return a.v.Eq(&b.v) }

func (a Amount) Add(b Amount) Amount {
	var z Amount
	if _, overflow := z.v.AddOverflow(&a.v, &b.v); overflow {
		panic("amount: addition overflow")
	}
	return z
}

// Sub panics on underflow. Callers check balances before subtracting.
func (a Amount) Sub(b Amount) Amount {
	z, ok := a.CheckedSub(b)
	if !ok {
		panic(fmt.Sprintf("amount: subtraction underflow %s - %s", a, b))
	}
	return z
}

func (a Amount) CheckedSub(b Amount) (Amount, bool) {
	var z Amount
	if _, underflow := z.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, false
	}
	return z, true
}

// SaturatingSub returns a-b, or zero when b > a.
func (a Amount) SaturatingSub(b Amount) Amount {
	z, ok := a.CheckedSub(b)
	if !ok {
		return Amount{}
	}
	return z
}

func (a Amount) Mul(b Amount) Amount {
	var z Amount
	if _, overflow := z.v.MulOverflow(&a.v, &b.v); overflow {
		panic("amount: multiplication overflow")
	}
	return z
}

func (a Amount) MulUint64(m uint64) Amount {
	return a.Mul(NewAmount(m))
}

// Div returns floor(a/b); division by zero yields zero.
func (a Amount) Div(b Amount) Amount {
	var z Amount
	z.v.Div(&a.v, &b.v)
	return z
}

func (a Amount) DivUint64(d uint64) Amount {
	return a.Div(NewAmount(d))
}

// MulDiv returns floor(a*m/d) with a 512-bit intermediate product.
// Division by zero yields zero.
func (a Amount) MulDiv(m, d Amount) Amount {
	if d.IsZero() {
		return Amount{}
	}
	var z Amount
	if _, overflow := z.v.MulDivOverflow(&a.v, &m.v, &d.v); overflow {
		panic("amount: muldiv overflow")
	}
	return z
}

// MulDivUp returns ceil(a*m/d). Division by zero yields zero.
func (a Amount) MulDivUp(m, d Amount) Amount {
	z := a.MulDiv(m, d)
	if d.IsZero() {
		return z
	}
	var rem uint256.Int
	if !rem.MulMod(&a.v, &m.v, &d.v).IsZero() {
		return z.Add(NewAmount(1))
	}
	return z
}

// Percent returns floor(a*p/100).
func (a Amount) Percent(p uint64) Amount {
	return a.MulDiv(NewAmount(p), NewAmount(100))
}

// MulDecimal returns floor(a*d) where d is an 18-decimal fixed point ratio.
func (a Amount) MulDecimal(d Decimal) Amount {
	return a.MulDiv(d.raw, decimalBase)
}

// Sqrt returns floor(sqrt(a)).
func (a Amount) Sqrt() Amount {
	var z Amount
	z.v.Sqrt(&a.v)
	return z
}

func (a Amount) Uint64() uint64 { return a.v.Uint64() }

func (a Amount) IsUint64() bool { return a.v.IsUint64() }

// Float64 is lossy and only meant for metrics.
func (a Amount) Float64() float64 {
	return a.v.Float64()
}

func (a Amount) String() string { return a.v.Dec() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := AmountFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func MinAmount(a, b Amount) Amount {
	if a.Lt(b) {
		return a
	}
	return b
}

// Decimal is an 18-decimal fixed point ratio where DecimalOne is 1.0.
type Decimal struct {
	raw Amount
}

func DecimalOne() Decimal {
	return Decimal{raw: decimalBase}
}

func DecimalZero() Decimal {
	return Decimal{}
}

// NewDecimal builds num/den as a fixed point ratio.
func NewDecimal(num, den uint64) Decimal {
	return Decimal{raw: NewAmount(num).MulDiv(decimalBase, NewAmount(den))}
}

// NewPercent builds p/100.
func NewPercent(p uint64) Decimal {
	return NewDecimal(p, 100)
}

// DecimalFromString parses a plain decimal such as "1.15" or "0.054".
func DecimalFromString(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, fmt.Errorf("invalid decimal: empty string")
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > decimals {
		return Decimal{}, fmt.Errorf("invalid decimal %q: more than %d fractional digits", s, decimals)
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))
	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return Decimal{}, nil
	}
	raw, err := AmountFromString(digits)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{raw: raw}, nil
}

func MustDecimal(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) Cmp(o Decimal) int { return d.raw.Cmp(o.raw) }

func (d Decimal) IsZero() bool { return d.raw.IsZero() }

func (d Decimal) GreaterThanOne() bool { return d.raw.Gt(decimalBase) }

func (d Decimal) LessThanOne() bool { return d.raw.Lt(decimalBase) }

func (d Decimal) Add(o Decimal) Decimal { return Decimal{raw: d.raw.Add(o.raw)} }

// Sub saturates at zero.
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{raw: d.raw.SaturatingSub(o.raw)} }

func MinDecimal(a, b Decimal) Decimal {
	if a.raw.Lt(b.raw) {
		return a
	}
	return b
}

func (d Decimal) String() string {
	i := d.raw.Div(decimalBase).String()
	frac := d.raw.SaturatingSub(d.raw.Div(decimalBase).Mul(decimalBase)).String()
	if frac == "0" {
		return i
	}
	frac = strings.Repeat("0", decimals-len(frac)) + frac
	return i + "." + strings.TrimRight(frac, "0")
}

func (d Decimal) Float64() float64 {
	return d.raw.Float64() / 1e18
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := DecimalFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
