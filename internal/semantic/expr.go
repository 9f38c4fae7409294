package semantic

import (
	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/token"
)

// analyzeExpr resolves expr's static type, recording diagnostics for any
// violation of spec.md §4.3's typing rules, and remembers the result so
// the code generator can later recover it via TypeOf.
func (a *Analyzer) analyzeExpr(expr ast.Expression, scope *Scope) TypeInfo {
	t := a.analyzeExprUncached(expr, scope)
	a.exprTypes[expr] = t
	return t
}

func (a *Analyzer) analyzeExprUncached(expr ast.Expression, scope *Scope) TypeInfo {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return TypeInfo{Name: "int"}
	case *ast.FloatLiteral:
		return TypeInfo{Name: "float"}
	case *ast.StringLiteral:
		return TypeInfo{Name: "string"}
	case *ast.CharLiteral:
		return TypeInfo{Name: "char"}
	case *ast.BoolLiteral:
		return TypeInfo{Name: "bool"}
	case *ast.Identifier:
		return a.analyzeIdentifier(e, scope)
	case *ast.BinaryExpr:
		return a.analyzeBinary(e, scope)
	case *ast.UnaryExpr:
		return a.analyzeUnary(e, scope)
	case *ast.CallExpr:
		return a.analyzeCall(e, scope)
	case *ast.MemberExpr:
		return a.analyzeMemberAccess(e, scope, nil, false)
	case *ast.NewExpr:
		return a.analyzeNew(e, scope)
	case *ast.IndexExpr:
		return a.analyzeIndex(e, scope)
	}
	return Void
}

func (a *Analyzer) analyzeIdentifier(e *ast.Identifier, scope *Scope) TypeInfo {
	sym, ok := scope.Lookup(e.Name)
	if !ok {
		a.addError(e.Position, "Undefined variable '%s'", e.Name)
		return Void
	}
	vs, ok := sym.(*VarSymbol)
	if !ok {
		a.addError(e.Position, "'%s' is not a variable", e.Name)
		return Void
	}
	return vs.Type
}

func (a *Analyzer) analyzeBinary(e *ast.BinaryExpr, scope *Scope) TypeInfo {
	lt := a.analyzeExpr(e.Left, scope)
	rt := a.analyzeExpr(e.Right, scope)

	switch e.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.addError(e.Position, "Arithmetic operators require numeric operands")
			return TypeInfo{Name: "int"}
		}
		if lt.Name == "float" || rt.Name == "float" {
			return TypeInfo{Name: "float"}
		}
		return TypeInfo{Name: "int"}

	case token.EQ, token.NEQ:
		if !a.typesComparable(lt, rt) {
			a.addError(e.Position, "Cannot compare %s with %s", lt, rt)
		}
		return TypeInfo{Name: "bool"}

	case token.LT, token.LTE, token.GT, token.GTE:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.addError(e.Position, "Comparison operators require numeric operands")
		}
		return TypeInfo{Name: "bool"}

	case token.ANDAND, token.OROR:
		if !lt.IsBoolOrNumeric() || !rt.IsBoolOrNumeric() {
			a.addError(e.Position, "Logical operators require boolean operands")
		}
		return TypeInfo{Name: "bool"}
	}
	return Void
}

func (a *Analyzer) analyzeUnary(e *ast.UnaryExpr, scope *Scope) TypeInfo {
	operand := a.analyzeExpr(e.Operand, scope)
	switch e.Op {
	case token.MINUS:
		if !operand.IsNumeric() {
			a.addError(e.Position, "Negation requires numeric operand")
		}
		return operand
	case token.BANG:
		if !operand.IsBoolOrNumeric() {
			a.addError(e.Position, "Logical not requires boolean operand")
		}
		return TypeInfo{Name: "bool"}
	}
	return Void
}

// builtins are the two functions spec.md §4.4 lowers directly to libc
// calls; they are not registered as FuncSymbols since they have no
// single fixed signature.
var builtins = map[string]bool{"print": true, "read": true}

func (a *Analyzer) analyzeCall(e *ast.CallExpr, scope *Scope) TypeInfo {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if builtins[callee.Name] {
			for _, arg := range e.Args {
				a.analyzeExpr(arg, scope)
			}
			return Void
		}
		sym, ok := a.global.LookupLocal(callee.Name)
		if !ok {
			a.addError(callee.Position, "Undefined function '%s'", callee.Name)
			for _, arg := range e.Args {
				a.analyzeExpr(arg, scope)
			}
			return Void
		}
		fs, ok := sym.(*FuncSymbol)
		if !ok {
			a.addError(callee.Position, "'%s' is not a function", callee.Name)
			for _, arg := range e.Args {
				a.analyzeExpr(arg, scope)
			}
			return Void
		}
		a.checkArgs(e.Position, "Function", fs.Name, fs.Params, e.Args, scope)
		return fs.ReturnType

	case *ast.MemberExpr:
		return a.analyzeMemberAccess(callee, scope, e.Args, true)
	}

	a.addError(e.Position, "Expression is not callable")
	for _, arg := range e.Args {
		a.analyzeExpr(arg, scope)
	}
	return Void
}

func (a *Analyzer) checkArgs(pos token.Position, kind, name string, params []Param, args []ast.Expression, scope *Scope) {
	if len(args) != len(params) {
		a.addError(pos, "%s '%s' expects %d arguments, got %d", kind, name, len(params), len(args))
	}
	for i, arg := range args {
		argType := a.analyzeExpr(arg, scope)
		if i < len(params) && !a.canAssign(argType, params[i].Type) {
			a.addError(arg.Pos(), "Argument %d type mismatch: expected %s, got %s", i+1, params[i].Type, argType)
		}
	}
}

// analyzeMemberAccess resolves `receiver.member` for both field access
// (isCall false) and method calls (isCall true, with callArgs as the
// call's arguments), enforcing
// private-access per spec.md §4.3: a private member is reachable only
// while analyzing a method of its declaring class.
func (a *Analyzer) analyzeMemberAccess(e *ast.MemberExpr, scope *Scope, callArgs []ast.Expression, isCall bool) TypeInfo {
	receiverType := a.analyzeExpr(e.Receiver, scope)
	cs, ok := a.classes[receiverType.Name]
	if !ok {
		if isCall {
			a.addError(e.Position, "Type '%s' has no methods", receiverType.Name)
		} else {
			a.addError(e.Position, "Type '%s' has no members", receiverType.Name)
		}
		for _, arg := range callArgs {
			a.analyzeExpr(arg, scope)
		}
		return Void
	}

	if isCall {
		fs, declClass := cs.FindMethod(e.Member)
		if fs == nil {
			a.addError(e.Position, "Method '%s' not found in class '%s'", e.Member, receiverType.Name)
			for _, arg := range callArgs {
				a.analyzeExpr(arg, scope)
			}
			return Void
		}
		if fs.Private && (a.currentClass == nil || a.currentClass.Name != declClass) {
			a.addError(e.Position, "Cannot access private method '%s'", e.Member)
		}
		a.checkArgs(e.Position, "Method", e.Member, fs.Params, callArgs, scope)
		return fs.ReturnType
	}

	vs, declClass := cs.FindField(e.Member)
	if vs == nil {
		a.addError(e.Position, "Field '%s' not found in class '%s'", e.Member, receiverType.Name)
		return Void
	}
	if vs.Private && (a.currentClass == nil || a.currentClass.Name != declClass) {
		a.addError(e.Position, "Cannot access private field '%s'", e.Member)
	}
	return vs.Type
}

func (a *Analyzer) analyzeNew(e *ast.NewExpr, scope *Scope) TypeInfo {
	cs, ok := a.classes[e.ClassName]
	if !ok {
		a.addError(e.Position, "Undefined class '%s'", e.ClassName)
		for _, arg := range e.Args {
			a.analyzeExpr(arg, scope)
		}
		return Void
	}

	ctor := cs.Constructor()
	if ctor == nil {
		if len(e.Args) != 0 {
			a.addError(e.Position, "Constructor expects 0 arguments")
		}
		for _, arg := range e.Args {
			a.analyzeExpr(arg, scope)
		}
		return TypeInfo{Name: e.ClassName}
	}

	if len(e.Args) != len(ctor.Params) {
		a.addError(e.Position, "Constructor expects %d arguments", len(ctor.Params))
	}
	for i, arg := range e.Args {
		argType := a.analyzeExpr(arg, scope)
		if i < len(ctor.Params) && !a.canAssign(argType, ctor.Params[i].Type) {
			a.addError(arg.Pos(), "Argument %d type mismatch: expected %s, got %s", i+1, ctor.Params[i].Type, argType)
		}
	}
	return TypeInfo{Name: e.ClassName}
}

func (a *Analyzer) analyzeIndex(e *ast.IndexExpr, scope *Scope) TypeInfo {
	arrType := a.analyzeExpr(e.Array, scope)
	idxType := a.analyzeExpr(e.Index, scope)

	if !arrType.IsArray {
		a.addError(e.Position, "Cannot index non-array type '%s'", arrType.Name)
	}
	if idxType.Name != "int" {
		a.addError(e.Position, "Array index must be integer")
	}
	return TypeInfo{Name: arrType.Name, IsArray: false}
}

// canAssign implements spec.md §4.3's type-compatibility rule: identical
// types, int-to-float widening, or nominal class subtyping walking the
// base-class chain.
func (a *Analyzer) canAssign(from, to TypeInfo) bool {
	if from.IsArray != to.IsArray {
		return false
	}
	if from.Name == to.Name {
		return true
	}
	if from.IsArray {
		return false
	}
	if from.Name == "int" && to.Name == "float" {
		return true
	}
	if fc, ok := a.classes[from.Name]; ok {
		for cur := fc; cur != nil; cur = cur.Base {
			if cur.Name == to.Name {
				return true
			}
		}
	}
	return false
}

// typesComparable governs `==`/`!=`: either operand must be assignable
// to the other's type.
func (a *Analyzer) typesComparable(x, y TypeInfo) bool {
	return a.canAssign(x, y) || a.canAssign(y, x)
}
