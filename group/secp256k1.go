package group

import (
	"io"
	"math/big"

	"github.com/ing-bank/zkrp/crypto/p256"
)

type p256k1Group struct {
	fieldOrder *big.Int
	curveOrder *big.Int
	name       string
}

type p256k1Point struct {
	curve *p256k1Group
	val   *p256.P256
}

func (g *p256k1Group) Name() string {
	return g.name
}

func (g *p256k1Group) P() *big.Int {
	return g.fieldOrder
}

func (g *p256k1Group) N() *big.Int {
	return g.curveOrder
}

func (g *p256k1Group) Generator() Element {
	return &p256k1Point{
		curve: g,
		val:   new(p256.P256).ScalarBaseMult(big.NewInt(1)),
	}
}

func (g *p256k1Group) Identity() Element {
	return &p256k1Point{
		curve: g,
		val:   new(p256.P256).SetInfinity(),
	}
}

func (g *p256k1Group) Random(rnd io.Reader) Element {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		panic(err)
	}
	// 512 bits reduced modulo a 256-bit order leaves a negligible bias.
	r := new(big.Int).SetBytes(buf)
	e := g.Identity()
	e.BaseScale(r)
	return e
}

func (g *p256k1Group) Element() Element {
	return g.Identity()
}

func isInfinity(p *p256.P256) bool {
	if p.X == nil || p.Y == nil {
		return true
	}
	return p.X.Sign() == 0 && p.Y.Sign() == 0
}

func (e *p256k1Point) check(a Element) *p256k1Point {
	ey, ok := a.(*p256k1Point)
	if !ok {
		panic("incompatible group element type")
	}
	return ey
}

func (e *p256k1Point) Add(a Element, b Element) Element {
	ca := e.check(a)
	cb := e.check(b)
	switch {
	case isInfinity(ca.val):
		e.val = copyPoint(cb.val)
	case isInfinity(cb.val):
		e.val = copyPoint(ca.val)
	default:
		e.val = new(p256.P256).Multiply(ca.val, cb.val)
	}
	return e
}

func (e *p256k1Point) Subtract(a Element, b Element) Element {
	tmp := e.curve.Identity()
	tmp.Negate(b)
	e.Add(a, tmp)
	return e
}

func (e *p256k1Point) Negate(a Element) Element {
	minusOne := new(big.Int).Sub(e.curve.curveOrder, big.NewInt(1))
	return e.Scale(a, minusOne)
}

func (e *p256k1Point) IsEqual(b Element) bool {
	cb := e.check(b)
	if isInfinity(e.val) || isInfinity(cb.val) {
		return isInfinity(e.val) && isInfinity(cb.val)
	}
	return e.val.X.Cmp(cb.val.X) == 0 && e.val.Y.Cmp(cb.val.Y) == 0
}

func (e *p256k1Point) Set(a Element) Element {
	ca := e.check(a)
	e.val = copyPoint(ca.val)
	return e
}

func (e *p256k1Point) Scale(a Element, s *big.Int) Element {
	ca := e.check(a)
	k := new(big.Int).Mod(s, e.curve.curveOrder)
	if k.Sign() == 0 || isInfinity(ca.val) {
		e.val = new(p256.P256).SetInfinity()
		return e
	}
	e.val = new(p256.P256).ScalarMult(ca.val, k)
	return e
}

func (e *p256k1Point) BaseScale(s *big.Int) Element {
	k := new(big.Int).Mod(s, e.curve.curveOrder)
	if k.Sign() == 0 {
		e.val = new(p256.P256).SetInfinity()
		return e
	}
	e.val = new(p256.P256).ScalarBaseMult(k)
	return e
}

func (e *p256k1Point) GroupOrder() *big.Int {
	return e.curve.curveOrder
}

func (e *p256k1Point) FieldOrder() *big.Int {
	return e.curve.fieldOrder
}

func (e *p256k1Point) String() string {
	if isInfinity(e.val) {
		return "infinity"
	}
	return e.val.String()
}

func (e *p256k1Point) IsIdentity() bool {
	return isInfinity(e.val)
}

func copyPoint(p *p256.P256) *p256.P256 {
	if isInfinity(p) {
		return new(p256.P256).SetInfinity()
	}
	return &p256.P256{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

func SecP256k1() Group {
	G := new(p256k1Group)
	G.fieldOrder = mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	G.curveOrder = mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	G.name = "secp256k1"
	return G
}
