// Copyright (c) The Laye Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sema

import "github.com/laye-lang/layec/pkg/ast"

// conversionResult is the outcome of convert: either a numeric score
// (lower is better) or one of the three sentinel outcomes named in spec
// §4.6.
type conversionResult struct {
	score    int
	kind     convKind
	castKind ast.CastKind
}

type convKind uint8

const (
	convScored convKind = iota
	convNoop
	convImpossible
	convContainsErrors
)

const noopScore = 0

// convert implements spec §4.6's scored conversion algorithm. expr is not
// mutated; the caller (convertOrError) is responsible for wrapping it in a
// CastExpr once a winning conversion has been chosen.
func (c *checker) convert(fromType ast.Type, expr ast.Expr, to ast.Type) conversionResult {
	// `nil` carries no type of its own (SPEC_FULL.md supplemented feature
	// 1): it converts to any nilable pointer or buffer, ahead of the
	// general Poison short-circuit below, since analyseExpr leaves a
	// NilLiteral's own type as Poison until a target is known.
	if _, ok := expr.(*ast.NilLiteral); ok {
		if (to.Kind() == ast.TypePointer || to.Kind() == ast.TypeBuffer) && to.Node.Nilable {
			return conversionResult{kind: convScored, score: 1, castKind: ast.CastImplicit}
		}
		//
		return conversionResult{kind: convImpossible}
	}
	//
	if expr.State() == ast.Errored || fromType.Kind() == ast.TypePoison || to.Kind() == ast.TypePoison {
		return conversionResult{kind: convContainsErrors}
	}
	//
	if fromType.StructurallyEqual(to) {
		score := noopScore
		if expr.IsLValue() {
			score++
		}
		//
		return conversionResult{kind: convScored, score: score, castKind: ast.CastImplicit}
	}
	//
	if fromType.Kind() == ast.TypeReference && to.Kind() == ast.TypeReference {
		if referenceCompatible(fromType, to) {
			return conversionResult{kind: convScored, score: 1, castKind: ast.CastSoft}
		}
		//
		return conversionResult{kind: convImpossible}
	}
	//
	if fromType.Kind() == ast.TypeReference {
		// Strip the reference and retry against the referent type, per
		// spec §4.6 step 4; the recorded cast is always LVALUE_TO_RVALUE.
		referent := *fromType.Node.Elem
		inner := c.convert(referent, expr, to)
		//
		if inner.kind == convScored {
			inner.score++
			inner.castKind = ast.CastLValueToRValue
		}
		//
		return inner
	}
	//
	if (fromType.Kind() == ast.TypePointer && to.Kind() == ast.TypeReference) ||
		(fromType.Kind() == ast.TypeReference && to.Kind() == ast.TypePointer) {
		if elementCompatible(fromType, to) {
			return conversionResult{kind: convScored, score: 1, castKind: ast.CastSoft}
		}
		//
		return conversionResult{kind: convImpossible}
	}
	//
	if fromType.Kind() == ast.TypeInt && to.Kind() == ast.TypeInt {
		if lit, ok := expr.(*ast.IntLiteral); ok && fitsWidth(lit.Value, to.Node.BitWidth, to.Node.Signed) {
			return conversionResult{kind: convScored, score: 1, castKind: ast.CastImplicit}
		}
		//
		if fromType.Node.BitWidth <= to.Node.BitWidth {
			return conversionResult{kind: convScored, score: 2, castKind: ast.CastImplicit}
		}
		//
		return conversionResult{kind: convImpossible}
	}
	//
	return conversionResult{kind: convImpossible}
}

func fitsWidth(value uint64, bits uint32, signed bool) bool {
	if bits >= 64 {
		return true
	}
	//
	limit := uint64(1) << bits
	if signed {
		limit >>= 1
	}
	//
	return value < limit
}

func referenceCompatible(from, to ast.Type) bool {
	if !structurallyEqualElem(from, to) {
		return false
	}
	//
	return !(from.Node.Elem.IsModifiable == false && to.Node.Elem.IsModifiable)
}

func elementCompatible(from, to ast.Type) bool {
	return structurallyEqualElem(from, to)
}

func structurallyEqualElem(a, b ast.Type) bool {
	if a.Node == nil || b.Node == nil || a.Node.Elem == nil || b.Node.Elem == nil {
		return false
	}
	//
	return a.Node.Elem.StructurallyEqual(*b.Node.Elem)
}

// convertOrError runs convert and, on success, wraps expr's analysed type
// in place by recording the winning cast kind on a synthesised CastExpr;
// on IMPOSSIBLE it reports spec §4.6's "type A not convertible to B"
// diagnostic. It returns the (possibly cast-wrapped) expression.
func (c *checker) convertOrError(expr ast.Expr, to ast.Type) ast.Expr {
	from := expr.Type()
	result := c.convert(from, expr, to)
	//
	switch result.kind {
	case convNoop, convScored:
		if result.castKind == ast.CastImplicit && from.StructurallyEqual(to) {
			return expr
		}
		//
		return c.wrapCast(expr, to, result.castKind)
	case convContainsErrors:
		return expr
	default:
		c.errorf(expr.Location(), "type %s not convertible to %s", typeName(from), typeName(to))
		return expr
	}
}

func (c *checker) wrapCast(expr ast.Expr, to ast.Type, kind ast.CastKind) ast.Expr {
	cast := &ast.CastExpr{
		Header: ast.NewGeneratedHeader(ast.KindCastExpr, expr.Location(), expr.Owner()),
		Kind:   kind,
		Value:  expr,
	}
	//
	cast.SetType(to)
	cast.SetState(ast.Ok)
	//
	return cast
}

// convertToCommonType implements spec §4.6's convert_to_common_type: try
// both directions and keep the lower-scoring one.
func (c *checker) convertToCommonType(a, b ast.Expr) (ast.Type, bool) {
	aToB := c.convert(a.Type(), a, b.Type())
	bToA := c.convert(b.Type(), b, a.Type())
	//
	switch {
	case aToB.kind == convScored && (bToA.kind != convScored || aToB.score <= bToA.score):
		return b.Type(), true
	case bToA.kind == convScored:
		return a.Type(), true
	default:
		return ast.Poison, false
	}
}

// typeName renders a type for diagnostic messages. It is deliberately
// simple (no generics, no qualified paths) since Laye's type grammar has
// no user-facing "pretty name" concept beyond what the parser already saw.
func typeName(t ast.Type) string {
	if t.Node == nil {
		return "<unknown>"
	}
	//
	switch t.Node.Kind {
	case ast.TypeVoid:
		return "void"
	case ast.TypeNoReturn:
		return "noreturn"
	case ast.TypeBool:
		return "bool"
	case ast.TypeInt:
		if t.Node.Signed {
			return "i" + itoa(int64(t.Node.BitWidth))
		}
		//
		return "u" + itoa(int64(t.Node.BitWidth))
	case ast.TypeFloat:
		return "f" + itoa(int64(t.Node.BitWidth))
	case ast.TypePointer:
		return typeName(*t.Node.Elem) + "*"
	case ast.TypeReference:
		return typeName(*t.Node.Elem) + "&"
	case ast.TypeBuffer:
		return typeName(*t.Node.Elem) + "[*]"
	case ast.TypeArray:
		return typeName(*t.Node.Elem) + "[]"
	case ast.TypeStruct:
		return t.Node.Name
	case ast.TypePoison:
		return "<poison>"
	default:
		return "<?>"
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	//
	neg := n < 0
	if neg {
		n = -n
	}
	//
	var buf [20]byte
	i := len(buf)
	//
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	//
	if neg {
		i--
		buf[i] = '-'
	}
	//
	return string(buf[i:])
}
