package group

import (
	"encoding/hex"
	"io"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// circlGroup adapts a circl prime-order group to Group.
type circlGroup struct {
	impl       group.Group
	fieldOrder *big.Int
	curveOrder *big.Int
	name       string
}

type circlPoint struct {
	curve *circlGroup
	val   group.Element
}

func (g *circlGroup) Name() string {
	return g.name
}

func (g *circlGroup) P() *big.Int {
	return g.fieldOrder
}

func (g *circlGroup) N() *big.Int {
	return g.curveOrder
}

func (g *circlGroup) Generator() Element {
	return &circlPoint{curve: g, val: g.impl.Generator()}
}

func (g *circlGroup) Identity() Element {
	return &circlPoint{curve: g, val: g.impl.Identity()}
}

func (g *circlGroup) Random(rnd io.Reader) Element {
	return &circlPoint{curve: g, val: g.impl.RandomElement(rnd)}
}

func (g *circlGroup) Element() Element {
	return &circlPoint{curve: g, val: g.impl.NewElement()}
}

func (g *circlGroup) scalar(s *big.Int) group.Scalar {
	reduced := new(big.Int).Mod(s, g.curveOrder)
	return g.impl.NewScalar().SetBigInt(reduced)
}

func (e *circlPoint) check(a Element) *circlPoint {
	ea, ok := a.(*circlPoint)
	if !ok {
		panic("incompatible group element type")
	}
	if ea.curve.name != e.curve.name {
		panic("incompatible groups")
	}
	return ea
}

func (e *circlPoint) Add(a Element, b Element) Element {
	ca := e.check(a)
	cb := e.check(b)
	e.val = e.curve.impl.NewElement().Add(ca.val, cb.val)
	return e
}

func (e *circlPoint) Subtract(a Element, b Element) Element {
	tmp := e.curve.Identity()
	tmp.Negate(b)
	e.Add(a, tmp)
	return e
}

func (e *circlPoint) Negate(a Element) Element {
	ca := e.check(a)
	e.val = e.curve.impl.NewElement().Neg(ca.val)
	return e
}

func (e *circlPoint) IsEqual(b Element) bool {
	cb := e.check(b)
	return e.val.IsEqual(cb.val)
}

func (e *circlPoint) Set(a Element) Element {
	ca := e.check(a)
	e.val = e.curve.impl.NewElement().Set(ca.val)
	return e
}

func (e *circlPoint) Scale(a Element, s *big.Int) Element {
	ca := e.check(a)
	e.val = e.curve.impl.NewElement().Mul(ca.val, e.curve.scalar(s))
	return e
}

func (e *circlPoint) BaseScale(s *big.Int) Element {
	e.val = e.curve.impl.NewElement().MulGen(e.curve.scalar(s))
	return e
}

func (e *circlPoint) GroupOrder() *big.Int {
	return e.curve.curveOrder
}

func (e *circlPoint) FieldOrder() *big.Int {
	return e.curve.fieldOrder
}

func (e *circlPoint) IsIdentity() bool {
	return e.val.IsIdentity()
}

func (e *circlPoint) String() string {
	enc, err := e.val.MarshalBinaryCompress()
	if err != nil {
		return "<invalid>"
	}
	return hex.EncodeToString(enc)
}

func P256() Group {
	return &circlGroup{
		impl:       group.P256,
		fieldOrder: mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
		curveOrder: mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		name:       "P-256",
	}
}

func P384() Group {
	return &circlGroup{
		impl:       group.P384,
		fieldOrder: mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff"),
		curveOrder: mustHex("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"),
		name:       "P-384",
	}
}

func Ristretto255() Group {
	return &circlGroup{
		impl:       group.Ristretto255,
		fieldOrder: mustHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed"),
		curveOrder: mustHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
		name:       "ristretto255",
	}
}
