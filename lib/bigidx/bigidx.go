// Package bigidx implements a non-negative, fixed-width 128-bit integer
// wide enough to hold tree indices of a point-cloud index.
//
// A 128-bit unsigned pair is sufficient for every depth/chunk-size
// configuration the index algebra in lib/pcidx produces, so there is no
// need for arbitrary-precision arithmetic. All operations here are
// exact: division and shift never round, and values never go negative.
package bigidx

import (
	"fmt"
	"math/bits"
)

// Id is a non-negative 128-bit integer, stored as (hi, lo) with hi the
// more significant 64 bits.
type Id struct {
	hi, lo uint64
}

// Zero is the additive identity.
var Zero = Id{}

// One is the multiplicative identity.
var One = Id{lo: 1}

// FromU64 wraps a machine word as an Id.
func FromU64(v uint64) Id {
	return Id{lo: v}
}

// Add returns a+b. Never overflows in practice for the values this index
// algebra produces; if it somehow did, that is a programmer error and we
// fail fatally rather than silently wrap.
func (a Id) Add(b Id) Id {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, carry := bits.Add64(a.hi, b.hi, carry)
	if carry != 0 {
		panic("bigidx: Add overflowed 128 bits")
	}
	return Id{hi: hi, lo: lo}
}

// Sub returns a-b. Panics if b > a: Id is never negative, and an
// underflowing subtraction here indicates corrupted index arithmetic
// upstream, not a recoverable condition.
func (a Id) Sub(b Id) Id {
	if a.Less(b) {
		panic(fmt.Sprintf("bigidx: Sub underflow: %s - %s", a, b))
	}
	lo, borrow := bits.Sub64(a.lo, b.lo, 0)
	hi, borrow := bits.Sub64(a.hi, b.hi, borrow)
	if borrow != 0 {
		panic(fmt.Sprintf("bigidx: Sub underflow: %s - %s", a, b))
	}
	return Id{hi: hi, lo: lo}
}

// MulSmall returns a*k for a small machine-word multiplier k.
func (a Id) MulSmall(k uint64) Id {
	if k == 0 {
		return Zero
	}
	loHi, loLo := bits.Mul64(a.lo, k)
	hiHi, hiLo := bits.Mul64(a.hi, k)
	if hiHi != 0 {
		panic("bigidx: MulSmall overflowed 128 bits")
	}
	sum, carry := bits.Add64(loHi, hiLo, 0)
	if carry != 0 {
		panic("bigidx: MulSmall overflowed 128 bits")
	}
	return Id{hi: sum, lo: loLo}
}

// Shl returns a<<s for a small shift count s (s < 128).
func (a Id) Shl(s uint) Id {
	if a != Zero && s < 128 && uint(a.BitLen())+s > 128 {
		panic("bigidx: Shl overflowed 128 bits")
	}
	switch {
	case s == 0:
		return a
	case s >= 128:
		if a == Zero {
			return Zero
		}
		panic("bigidx: Shl shifted out all significant bits")
	case s < 64:
		hi := (a.hi << s) | (a.lo >> (64 - s))
		lo := a.lo << s
		return Id{hi: hi, lo: lo}
	default: // 64 <= s < 128
		return Id{hi: a.lo << (s - 64), lo: 0}
	}
}

// DivMod divides a by the small machine-word divisor k, returning the
// quotient and remainder. Panics on division by zero.
func (a Id) DivMod(k uint64) (quot Id, rem uint64) {
	if k == 0 {
		panic("bigidx: DivMod by zero")
	}
	hiQuot, hiRem := a.hi/k, a.hi%k
	loQuot, loRem := bits.Div64(hiRem, a.lo, k)
	return Id{hi: hiQuot, lo: loQuot}, loRem
}

// Cmp returns -1, 0, or 1 as a<b, a==b, a>b.
func (a Id) Cmp(b Id) int {
	switch {
	case a.hi != b.hi:
		if a.hi < b.hi {
			return -1
		}
		return 1
	case a.lo != b.lo:
		if a.lo < b.lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (a Id) Less(b Id) bool    { return a.Cmp(b) < 0 }
func (a Id) LessEq(b Id) bool  { return a.Cmp(b) <= 0 }
func (a Id) Greater(b Id) bool { return a.Cmp(b) > 0 }
func (a Id) GreaterEq(b Id) bool {
	return a.Cmp(b) >= 0
}
func (a Id) Equal(b Id) bool { return a.hi == b.hi && a.lo == b.lo }

// BitLen returns the number of bits required to represent a, i.e.
// floor(log2(a))+1 for a>0, and 0 for a==0.
func (a Id) BitLen() int {
	if a.hi != 0 {
		return 64 + bits.Len64(a.hi)
	}
	return bits.Len64(a.lo)
}

// AsSimple narrows a to a uint64, failing via panic if a does not fit in a machine word.
func (a Id) AsSimple() uint64 {
	if a.hi != 0 {
		panic(fmt.Sprintf("bigidx: AsSimple: %s exceeds 64 bits", a))
	}
	return a.lo
}

// String renders a in decimal, the format used for chunk naming.
func (a Id) String() string {
	if a == Zero {
		return "0"
	}
	var digits [40]byte // 128 bits needs at most 39 decimal digits
	i := len(digits)
	v := a
	for v != Zero {
		var rem uint64
		v, rem = v.DivMod(10)
		i--
		digits[i] = byte('0' + rem)
	}
	return string(digits[i:])
}
