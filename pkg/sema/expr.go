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

// analyseExpr dispatches on expr's concrete kind, assigns its Header.Type,
// and returns that type for the caller's convenience (most callers already
// have expr and don't need the return value, but convertOrError's yield-type
// checks do). expected carries the surrounding context's target type where
// one exists (an assignment's LHS, a return's function type, an if-arm's
// common type); it is ast.Unknown when there is none.
func (c *checker) analyseExpr(expr ast.Expr, expected ast.Type) ast.Type {
	if !c.enterState(expr) {
		return expr.Type()
	}
	//
	t := c.analyseExprKind(expr, expected)
	expr.SetType(t)
	c.finish(expr, t.Kind() != ast.TypePoison)
	//
	return t
}

func (c *checker) analyseExprKind(expr ast.Expr, expected ast.Type) ast.Type {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return c.analyseIntLiteral(n, expected)
	case *ast.FloatLiteral:
		return c.analyseFloatLiteral(n, expected)
	case *ast.StringLiteral:
		n.SetLValue(false)
		return ast.NewBuffer(ast.NewInt(8, false, false))
	case *ast.RuneLiteral:
		return ast.NewInt(32, true, false)
	case *ast.BoolLiteral:
		return ast.Bool
	case *ast.NilLiteral:
		// nil has no type of its own until convert sees the target it is
		// being matched against; Poison here just means "not yet known",
		// and convertOrError special-cases a nil source against any
		// nilable pointer/buffer target (SPEC_FULL.md supplemented
		// feature 1).
		return ast.Poison
	case *ast.NameExpr:
		return c.analyseNameExpr(n)
	case *ast.UnaryExpr:
		return c.analyseUnaryExpr(n)
	case *ast.BinaryExpr:
		return c.analyseBinaryExpr(n)
	case *ast.AssignExpr:
		return c.analyseAssignExpr(n)
	case *ast.CallExpr:
		return c.analyseCallExpr(n)
	case *ast.IndexExpr:
		return c.analyseIndexExpr(n)
	case *ast.MemberExpr:
		return c.analyseMemberExpr(n)
	case *ast.CastExpr:
		return c.analyseCastExpr(n)
	case *ast.SizeofExpr:
		return c.analyseSizeofExpr(n)
	case *ast.AlignofExpr:
		return c.analyseAlignofExpr(n)
	case *ast.IfExpr:
		return c.analyseIfExpr(n, expected)
	case *ast.ConstantExpr:
		return n.Type()
	case *ast.Block:
		return c.analyseBlock(n, expected)
	default:
		return ast.Poison
	}
}

func (c *checker) analyseIntLiteral(n *ast.IntLiteral, expected ast.Type) ast.Type {
	if expected.Kind() == ast.TypeInt && fitsWidth(n.Value, expected.Node.BitWidth, expected.Node.Signed) {
		return ast.NewInt(expected.Node.BitWidth, expected.Node.Signed, expected.Node.PlatformSpecified)
	}
	//
	return ast.NewInt(platformIntBits, true, true)
}

func (c *checker) analyseFloatLiteral(n *ast.FloatLiteral, expected ast.Type) ast.Type {
	if expected.Kind() == ast.TypeFloat {
		return ast.NewFloat(expected.Node.BitWidth, expected.Node.PlatformSpecified)
	}
	//
	return ast.NewFloat(platformFloatBits, true)
}

// analyseNameExpr resolves a (possibly dotted) name against the current
// scope chain, then the module's import namespace (spec §4.4), recording
// the winning declaration on Resolved so later passes (irgen) don't need to
// repeat the lookup.
func (c *checker) analyseNameExpr(n *ast.NameExpr) ast.Type {
	if len(n.Pieces) == 0 {
		return ast.Poison
	}
	//
	decl, ok := ast.Resolve(c.currentScope(), c.mod.Imports, n.Pieces[0])
	if len(n.Pieces) > 1 {
		// A path a::b::c walks the import namespaces down to an entity.
		decl, ok = nil, false
		sym, found := c.mod.Imports, c.mod.Imports != nil
		for _, piece := range n.Pieces {
			if !found {
				break
			}
			sym, found = sym.Get(piece)
		}
		if found && sym.Kind == ast.SymbolEntity && len(sym.Decls) > 0 {
			decl, ok = sym.Decls[0], true
		}
	}
	if !ok {
		c.errorf(n.Location(), "unknown name %q", n.Pieces[0])
		return ast.Poison
	}
	//
	n.Resolved = decl
	//
	switch d := decl.(type) {
	case *ast.BindingDecl:
		// A binding's scope entry exists as soon as the parser declares it,
		// which for a block-local binding is before sema has necessarily
		// reached its own declaring statement (the parser builds the whole
		// scope ahead of any semantic walk). analyseLocalBinding's
		// enterState guard makes resolving it here, out of order, safe and
		// idempotent against the later in-order visit from analyseBlock.
		c.analyseLocalBinding(d)
		n.SetLValue(true)
		return d.Type()
	case *ast.ParamDecl:
		n.SetLValue(true)
		return d.Type()
	case *ast.FunctionDecl:
		c.checkFunction(d)
		n.SetLValue(false)
		return d.Type()
	case *ast.StructDecl:
		c.checkStruct(d)
		n.SetLValue(false)
		return d.Type()
	default:
		return ast.Poison
	}
}

func (c *checker) analyseUnaryExpr(n *ast.UnaryExpr) ast.Type {
	switch n.Op {
	case ast.UnaryAddressOf:
		c.analyseExpr(n.Operand, ast.Unknown)
		//
		if !n.Operand.IsLValue() {
			c.errorf(n.Location(), "cannot take the address of a non-lvalue")
			return ast.Poison
		}
		//
		n.SetLValue(false)
		return ast.NewPointer(n.Operand.Type(), n.Operand.Type().IsModifiable)
	case ast.UnaryDeref:
		c.analyseExpr(n.Operand, ast.Unknown)
		operandType := n.Operand.Type()
		//
		if operandType.Kind() != ast.TypePointer {
			c.errorf(n.Location(), "cannot dereference a non-pointer type %s", typeName(operandType))
			return ast.Poison
		}
		//
		n.SetLValue(true)
		return (*operandType.Node.Elem).Modifiable(operandType.IsModifiable)
	case ast.UnaryLogicalNot:
		c.analyseExpr(n.Operand, ast.Bool)
		n.Operand = c.convertOrError(n.Operand, ast.Bool)
		n.SetLValue(false)
		return ast.Bool
	default: // UnaryPlus, UnaryMinus, UnaryComplement
		t := c.analyseExpr(n.Operand, ast.Unknown)
		//
		if t.Kind() != ast.TypeInt && t.Kind() != ast.TypeFloat {
			if t.Kind() != ast.TypePoison {
				c.errorf(n.Location(), "operator requires a numeric operand, got %s", typeName(t))
			}
			//
			return ast.Poison
		}
		//
		if n.Op == ast.UnaryComplement && t.Kind() == ast.TypeFloat {
			c.errorf(n.Location(), "bitwise complement requires an integer operand, got %s", typeName(t))
			return ast.Poison
		}
		//
		n.SetLValue(false)
		return t
	}
}

// analyseBinaryExpr implements spec §4.6's operator type-check matrix:
// arithmetic/bitwise operators require numeric or pointer-arithmetic
// operands (buffer +/- integer is allowed), shifts and bitwise operators
// forbid floats, comparisons always yield bool, and ==/!= additionally
// accept two pointers, two buffers of identical element type, or two bools.
func (c *checker) analyseBinaryExpr(n *ast.BinaryExpr) ast.Type {
	lt := c.analyseExpr(n.Left, ast.Unknown)
	rt := c.analyseExpr(n.Right, ast.Unknown)
	n.SetLValue(false)
	//
	if lt.Kind() == ast.TypePoison || rt.Kind() == ast.TypePoison {
		return ast.Poison
	}
	//
	switch n.Op {
	case ast.BinLogicalOr, ast.BinLogicalXor, ast.BinLogicalAnd:
		n.Left = c.convertOrError(n.Left, ast.Bool)
		n.Right = c.convertOrError(n.Right, ast.Bool)
		return ast.Bool
	case ast.BinEq, ast.BinNe:
		return c.analyseEqualityOperands(n, lt, rt)
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if !c.isNumeric(lt) || !c.isNumeric(rt) {
			c.errorf(n.Location(), "comparison requires numeric operands, got %s and %s", typeName(lt), typeName(rt))
			return ast.Poison
		}
		//
		if common, ok := c.convertToCommonType(n.Left, n.Right); ok {
			n.Left = c.convertOrError(n.Left, common)
			n.Right = c.convertOrError(n.Right, common)
		} else {
			c.errorf(n.Location(), "incompatible operand types %s and %s", typeName(lt), typeName(rt))
		}
		//
		return ast.Bool
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		if lt.Kind() != ast.TypeInt || rt.Kind() != ast.TypeInt {
			c.errorf(n.Location(), "bitwise operator requires integer operands, got %s and %s", typeName(lt), typeName(rt))
			return ast.Poison
		}
		//
		if n.Op == ast.BinShl || n.Op == ast.BinShr {
			return lt
		}
		//
		common, ok := c.convertToCommonType(n.Left, n.Right)
		if !ok {
			c.errorf(n.Location(), "incompatible operand types %s and %s", typeName(lt), typeName(rt))
			return ast.Poison
		}
		//
		n.Left = c.convertOrError(n.Left, common)
		n.Right = c.convertOrError(n.Right, common)
		return common
	default: // arithmetic: + - * / %
		return c.analyseArithmeticOperands(n, lt, rt)
	}
}

func (c *checker) isNumeric(t ast.Type) bool {
	return t.Kind() == ast.TypeInt || t.Kind() == ast.TypeFloat
}

func (c *checker) analyseEqualityOperands(n *ast.BinaryExpr, lt, rt ast.Type) ast.Type {
	switch {
	case lt.Kind() == ast.TypeBool && rt.Kind() == ast.TypeBool:
		return ast.Bool
	case lt.Kind() == ast.TypePointer && rt.Kind() == ast.TypePointer:
		return ast.Bool
	case lt.Kind() == ast.TypeBuffer && rt.Kind() == ast.TypeBuffer && structurallyEqualElem(lt, rt):
		return ast.Bool
	case c.isNumeric(lt) && c.isNumeric(rt):
		if common, ok := c.convertToCommonType(n.Left, n.Right); ok {
			n.Left = c.convertOrError(n.Left, common)
			n.Right = c.convertOrError(n.Right, common)
		} else {
			c.errorf(n.Location(), "incompatible operand types %s and %s", typeName(lt), typeName(rt))
		}
		//
		return ast.Bool
	default:
		c.errorf(n.Location(), "operator == / != not defined for %s and %s", typeName(lt), typeName(rt))
		return ast.Bool
	}
}

// analyseArithmeticOperands allows buffer+-integer pointer arithmetic
// (spec §4.6) in addition to plain numeric operands; pointer-minus-pointer
// (computing a stride-scaled difference) is explicitly not supported.
func (c *checker) analyseArithmeticOperands(n *ast.BinaryExpr, lt, rt ast.Type) ast.Type {
	if lt.Kind() == ast.TypeBuffer && rt.Kind() == ast.TypeInt && (n.Op == ast.BinAdd || n.Op == ast.BinSub) {
		return lt
	}
	//
	if rt.Kind() == ast.TypeBuffer && lt.Kind() == ast.TypeInt && n.Op == ast.BinAdd {
		return rt
	}
	//
	if lt.Kind() == ast.TypeBuffer && rt.Kind() == ast.TypeBuffer {
		c.errorf(n.Location(), "pointer difference is not supported")
		return ast.Poison
	}
	//
	if !c.isNumeric(lt) || !c.isNumeric(rt) {
		c.errorf(n.Location(), "arithmetic operator requires numeric operands, got %s and %s", typeName(lt), typeName(rt))
		return ast.Poison
	}
	//
	common, ok := c.convertToCommonType(n.Left, n.Right)
	if !ok {
		c.errorf(n.Location(), "incompatible operand types %s and %s", typeName(lt), typeName(rt))
		return ast.Poison
	}
	//
	n.Left = c.convertOrError(n.Left, common)
	n.Right = c.convertOrError(n.Right, common)
	return common
}

func (c *checker) analyseAssignExpr(n *ast.AssignExpr) ast.Type {
	targetType := c.analyseExpr(n.Target, ast.Unknown)
	//
	if !n.Target.IsLValue() {
		c.errorf(n.Location(), "cannot assign to a non-lvalue")
	}
	//
	if n.IsRefRebind {
		c.analyseExpr(n.Value, targetType)
		//
		if targetType.Kind() != ast.TypeReference {
			c.errorf(n.Location(), "'<-' rebind target must be a reference")
		} else {
			n.Value = c.convertOrError(n.Value, targetType)
		}
	} else {
		c.analyseExpr(n.Value, targetType)
		n.Value = c.convertOrError(n.Value, targetType)
	}
	//
	n.SetLValue(false)
	return targetType
}

// analyseCallExpr checks the callee resolves to a function type, then each
// argument against the matching parameter, applying spec §4.6's C-varargs
// integer promotion to any arguments past the declared parameter list of a
// VarargsC function.
func (c *checker) analyseCallExpr(n *ast.CallExpr) ast.Type {
	calleeType := c.analyseExpr(n.Callee, ast.Unknown)
	n.SetLValue(false)
	//
	if calleeType.Kind() != ast.TypeFunction {
		if calleeType.Kind() != ast.TypePoison {
			c.errorf(n.Location(), "cannot call a value of type %s", typeName(calleeType))
		}
		//
		for _, arg := range n.Args {
			c.analyseExpr(arg, ast.Unknown)
		}
		//
		return ast.Poison
	}
	//
	params := calleeType.Node.Params
	//
	for i, arg := range n.Args {
		if i < len(params) {
			c.analyseExpr(arg, params[i])
			n.Args[i] = c.convertOrError(arg, params[i])
			continue
		}
		//
		c.analyseExpr(arg, ast.Unknown)
		//
		if calleeType.Node.Variadic == ast.VarargsC {
			n.Args[i] = c.promoteCVararg(arg)
		}
	}
	//
	if len(n.Args) < len(params) {
		c.errorf(n.Location(), "too few arguments: expected %d, got %d", len(params), len(n.Args))
	} else if calleeType.Node.Variadic == ast.VarargsNone && len(n.Args) > len(params) {
		c.errorf(n.Location(), "too many arguments: expected %d, got %d", len(params), len(n.Args))
	}
	//
	return *calleeType.Node.Return
}

// promoteCVararg implements spec §4.6's C default-argument-promotion rule: an
// integer narrower than C `int` is widened to platformIntBits, and a value
// wider than a pointer is rejected outright (it cannot be represented in a
// va_list slot on any target this front end cares about).
func (c *checker) promoteCVararg(arg ast.Expr) ast.Expr {
	t := arg.Type()
	//
	switch t.Kind() {
	case ast.TypeInt:
		if t.Node.BitWidth < platformIntBits {
			return c.convertOrError(arg, ast.NewInt(platformIntBits, t.Node.Signed, false))
		} else if t.Node.BitWidth > platformPtrBits {
			c.errorf(arg.Location(), "argument type %s is too wide to pass through C varargs", typeName(t))
		}
	case ast.TypeFloat:
		if t.Node.BitWidth < platformFloatBits {
			return c.convertOrError(arg, ast.NewFloat(platformFloatBits, false))
		}
	}
	//
	return arg
}

func (c *checker) analyseIndexExpr(n *ast.IndexExpr) ast.Type {
	baseType := c.analyseExpr(n.Base, ast.Unknown)
	//
	var elem ast.Type
	switch baseType.Kind() {
	case ast.TypeBuffer, ast.TypeArray:
		elem = *baseType.Node.Elem
	default:
		if baseType.Kind() != ast.TypePoison {
			c.errorf(n.Location(), "cannot index a value of type %s", typeName(baseType))
		}
		//
		elem = ast.Poison
	}
	//
	for _, idx := range n.Indices {
		c.analyseExpr(idx, ast.Unknown)
		//
		if idx.Type().Kind() != ast.TypeInt && idx.Type().Kind() != ast.TypePoison {
			c.errorf(idx.Location(), "index must be an integer, got %s", typeName(idx.Type()))
		}
	}
	//
	n.SetLValue(baseType.Kind() == ast.TypeBuffer || (baseType.Kind() == ast.TypeArray && n.Base.IsLValue()))
	return elem
}

// analyseMemberExpr implements spec §4.6: base must be an lvalue of struct
// type; FieldOffset is populated from the struct's already-laid-out Fields.
func (c *checker) analyseMemberExpr(n *ast.MemberExpr) ast.Type {
	baseType := c.analyseExpr(n.Base, ast.Unknown)
	//
	if baseType.Kind() != ast.TypeStruct {
		if baseType.Kind() != ast.TypePoison {
			c.errorf(n.Location(), "member access requires a struct value, got %s", typeName(baseType))
		}
		//
		return ast.Poison
	}
	//
	if !n.Base.IsLValue() {
		c.errorf(n.Location(), "member access requires an lvalue base")
	}
	//
	for _, f := range baseType.Node.Fields {
		if f.IsPadding || f.Name != n.FieldName {
			continue
		}
		//
		n.FieldOffset = f.Offset
		n.SetLValue(true)
		return f.Type.Modifiable(baseType.IsModifiable)
	}
	//
	c.errorf(n.Location(), "struct %s has no field %q", baseType.Node.Name, n.FieldName)
	return ast.Poison
}

// analyseCastExpr handles an explicit `cast(T) expr`. The parser already
// bakes Kind as CastHard for this syntax (spec §4.6: "cast(i8) 300 in a hard
// cast succeeds"); sema's job is only to resolve the target and analyse the
// operand, not to run it back through convertOrError's scored algorithm.
func (c *checker) analyseCastExpr(n *ast.CastExpr) ast.Type {
	target := c.resolveType(n.TargetSyntax)
	c.analyseExpr(n.Value, target)
	n.SetLValue(false)
	return target
}

func (c *checker) analyseSizeofExpr(n *ast.SizeofExpr) ast.Type {
	t := c.resolveType(n.TypeSyntax)
	size, _ := typeSizeAlign(t)
	//
	n.Folded = &ast.ConstantExpr{
		Header:   ast.NewGeneratedHeader(ast.KindConstantExpr, n.Location(), n.Owner()),
		IntValue: uint64(size),
	}
	n.Folded.SetType(ast.NewInt(platformPtrBits, false, true))
	n.Folded.SetState(ast.Ok)
	n.SetLValue(false)
	//
	return ast.NewInt(platformPtrBits, false, true)
}

func (c *checker) analyseAlignofExpr(n *ast.AlignofExpr) ast.Type {
	t := c.resolveType(n.TypeSyntax)
	_, align := typeSizeAlign(t)
	//
	n.Folded = &ast.ConstantExpr{
		Header:   ast.NewGeneratedHeader(ast.KindConstantExpr, n.Location(), n.Owner()),
		IntValue: uint64(align),
	}
	n.Folded.SetType(ast.NewInt(platformPtrBits, false, true))
	n.Folded.SetState(ast.Ok)
	n.SetLValue(false)
	//
	return ast.NewInt(platformPtrBits, false, true)
}

// analyseIfExpr type-checks an if-expression against expected (spec §4.6:
// "if-expressions type-check via expected-type yield target"; §3: "lvalue
// iff every yielded value is lvalue"). Each arm is a Block whose own type is
// the type its YieldStmt (or trailing ExprStmt) produced; analyseBlock
// handles that.
func (c *checker) analyseIfExpr(n *ast.IfExpr, expected ast.Type) ast.Type {
	for i, cond := range n.Conds {
		c.analyseExpr(cond, ast.Bool)
		n.Conds[i] = c.convertOrError(cond, ast.Bool)
	}
	//
	var armTypes []ast.Type
	allLValue := true
	//
	for _, pass := range n.Passes {
		t := c.analyseBlock(pass, expected)
		armTypes = append(armTypes, t)
		allLValue = allLValue && pass.IsLValue()
	}
	//
	if n.Else == nil {
		n.SetLValue(false)
		return ast.Void
	}
	//
	elseType := c.analyseBlock(n.Else, expected)
	armTypes = append(armTypes, elseType)
	allLValue = allLValue && n.Else.IsLValue()
	//
	result := armTypes[0]
	for _, t := range armTypes[1:] {
		if !t.StructurallyEqual(result) {
			result = ast.Void
			allLValue = false
			break
		}
	}
	//
	n.SetLValue(allLValue && result.Kind() != ast.TypeVoid)
	return result
}
