package boneh

import (
	"fmt"
	"math/big"

	"github.com/takakv/bpattest/scheme"
)

// FP2Value is the element a + b·x of F_p[x]/(x^2 + x + 1).
// The quotient is a field when p = 2 (mod 3).
type FP2Value struct {
	mod *big.Int
	a   *big.Int
	b   *big.Int
}

// NewFP2Value returns a + b·x with both coordinates reduced modulo mod.
func NewFP2Value(mod, a, b *big.Int) *FP2Value {
	return &FP2Value{
		mod: mod,
		a:   new(big.Int).Mod(a, mod),
		b:   new(big.Int).Mod(b, mod),
	}
}

func one(mod *big.Int) *FP2Value {
	return NewFP2Value(mod, big.NewInt(1), big.NewInt(0))
}

// Coordinates returns copies of a and b.
func (v *FP2Value) Coordinates() (*big.Int, *big.Int) {
	return new(big.Int).Set(v.a), new(big.Int).Set(v.b)
}

func (v *FP2Value) check(w *FP2Value) {
	if v.mod.Cmp(w.mod) != 0 {
		panic("incompatible field moduli")
	}
}

// Mul returns v·w. Using x^2 = -x - 1:
// (a + bx)(c + dx) = (ac - bd) + (ad + bc - bd)x.
func (v *FP2Value) Mul(w *FP2Value) *FP2Value {
	v.check(w)
	ac := new(big.Int).Mul(v.a, w.a)
	bd := new(big.Int).Mul(v.b, w.b)
	ad := new(big.Int).Mul(v.a, w.b)
	bc := new(big.Int).Mul(v.b, w.a)

	a := ac.Sub(ac, bd)
	b := ad.Add(ad, bc)
	b.Sub(b, bd)
	return NewFP2Value(v.mod, a, b)
}

// Exp returns v^e. Negative exponents are reduced modulo the order p^2 - 1 of
// the multiplicative group.
func (v *FP2Value) Exp(e *big.Int) *FP2Value {
	if e.Sign() < 0 {
		order := new(big.Int).Mul(v.mod, v.mod)
		order.Sub(order, big.NewInt(1))
		e = new(big.Int).Mod(e, order)
	}

	result := one(v.mod)
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = result.Mul(result)
		if e.Bit(i) == 1 {
			result = result.Mul(v)
		}
	}
	return result
}

func (v *FP2Value) Equal(w *FP2Value) bool {
	return v.mod.Cmp(w.mod) == 0 && v.a.Cmp(w.a) == 0 && v.b.Cmp(w.b) == 0
}

func (v *FP2Value) IsOne() bool {
	return v.a.Cmp(big.NewInt(1)) == 0 && v.b.Sign() == 0
}

func (v *FP2Value) IsZero() bool {
	return v.a.Sign() == 0 && v.b.Sign() == 0
}

// Add is the homomorphic addition of the scheme, which is multiplication in
// the field.
func (v *FP2Value) Add(c scheme.Ciphertext) scheme.Ciphertext {
	w, ok := c.(*FP2Value)
	if !ok {
		panic("incompatible ciphertext type")
	}
	return v.Mul(w)
}

func (v *FP2Value) String() string {
	return fmt.Sprintf("FP2Value<%s + %sx>", v.a.Text(16), v.b.Text(16))
}
