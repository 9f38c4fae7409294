// Package semantic implements the three-pass name resolution, type
// checking, and structural validation described in spec.md §4.3.
//
// The Analyzer struct and its addError(format, args...) accumulation
// idiom are grounded on the teacher's internal/semantic.Analyzer; the
// exact typing rules, scoping rules, and diagnostic wording are grounded
// on original_source/compiler/semantic/analyzer.py, the Python reference
// this specification was distilled from.
package semantic

import (
	"fmt"

	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/token"
)

// Diagnostic is a single semantic-analysis error.
type Diagnostic struct {
	Message string
	Pos     token.Position
}

// Analyzer runs the three passes over a Program and accumulates
// diagnostics without stopping at the first one.
type Analyzer struct {
	global *Scope

	classes    map[string]*ClassSymbol
	classOrder []string

	funcs    map[string]*FuncSymbol
	funcOrder []string

	currentClass *ClassSymbol
	currentFunc  *FuncSymbol
	loopDepth    int

	errors []*Diagnostic

	// exprTypes records the resolved static type of every analyzed
	// expression node, keyed by pointer identity. The code generator
	// consults this to dispatch print's format string on the inferred
	// type rather than the argument's syntactic literal form.
	exprTypes map[ast.Expression]TypeInfo
}

// NewAnalyzer constructs an Analyzer with an empty global scope.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		global:    NewScope(nil),
		classes:   make(map[string]*ClassSymbol),
		funcs:     make(map[string]*FuncSymbol),
		exprTypes: make(map[ast.Expression]TypeInfo),
	}
}

// Errors returns every diagnostic recorded during Analyze.
func (a *Analyzer) Errors() []*Diagnostic { return a.errors }

// Classes returns every class symbol in source declaration order.
func (a *Analyzer) Classes() []*ClassSymbol {
	out := make([]*ClassSymbol, 0, len(a.classOrder))
	for _, name := range a.classOrder {
		out = append(out, a.classes[name])
	}
	return out
}

// ClassByName looks up a class symbol after Analyze has run.
func (a *Analyzer) ClassByName(name string) (*ClassSymbol, bool) {
	cs, ok := a.classes[name]
	return cs, ok
}

// Funcs returns every free-function symbol in source declaration order.
func (a *Analyzer) Funcs() []*FuncSymbol {
	out := make([]*FuncSymbol, 0, len(a.funcOrder))
	for _, name := range a.funcOrder {
		out = append(out, a.funcs[name])
	}
	return out
}

// TypeOf returns the static type computed for expr during analysis.
func (a *Analyzer) TypeOf(expr ast.Expression) (TypeInfo, bool) {
	t, ok := a.exprTypes[expr]
	return t, ok
}

func (a *Analyzer) addError(pos token.Position, format string, args ...any) {
	a.errors = append(a.errors, &Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func resolveTypeInfo(t *ast.Type) TypeInfo {
	if t == nil {
		return Void
	}
	return TypeInfo{Name: t.Name, IsArray: t.IsArray}
}

// Analyze runs all three passes plus the post-pass main-function check.
// It always completes, recording diagnostics rather than stopping early.
func (a *Analyzer) Analyze(program *ast.Program) {
	a.registerDecls(program)
	a.resolveBaseClasses()
	a.analyzeClassBodies(program)
	a.analyzeFreeFunctionBodies(program)
	a.checkMain()
}

// ---- Pass 1: declaration registration ----

func (a *Analyzer) registerDecls(program *ast.Program) {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.ClassDecl:
			a.registerClass(d)
		case *ast.FuncDecl:
			a.registerFreeFunc(d)
		}
	}
}

func (a *Analyzer) registerClass(d *ast.ClassDecl) {
	if _, exists := a.global.LookupLocal(d.Name); exists {
		a.addError(d.Position, "Class '%s' already defined", d.Name)
		return
	}

	cs := newClassSymbol(d.Name, d.BaseName, d.Position)
	for _, f := range d.Fields {
		if _, exists := cs.Fields[f.Name]; exists {
			a.addError(f.Position, "Field '%s' already defined in class '%s'", f.Name, d.Name)
			continue
		}
		cs.Fields[f.Name] = &VarSymbol{Name: f.Name, Type: resolveTypeInfo(f.Type), Private: f.Private}
		cs.FieldOrder = append(cs.FieldOrder, f.Name)
	}
	for _, m := range d.Methods {
		if _, exists := cs.Methods[m.Name]; exists {
			a.addError(m.Position, "Method '%s' already defined in class '%s'", m.Name, d.Name)
			continue
		}
		cs.Methods[m.Name] = a.makeFuncSymbol(m, true, d.Name)
		cs.MethodOrder = append(cs.MethodOrder, m.Name)
	}

	a.classes[d.Name] = cs
	a.classOrder = append(a.classOrder, d.Name)
	a.global.Define(d.Name, cs)
}

func (a *Analyzer) registerFreeFunc(d *ast.FuncDecl) {
	if _, exists := a.global.LookupLocal(d.Name); exists {
		a.addError(d.Position, "Function '%s' already defined", d.Name)
		return
	}
	fs := a.makeFuncSymbol(d, false, "")
	a.funcs[d.Name] = fs
	a.funcOrder = append(a.funcOrder, d.Name)
	a.global.Define(d.Name, fs)
}

func (a *Analyzer) makeFuncSymbol(d *ast.FuncDecl, isMethod bool, owner string) *FuncSymbol {
	params := make([]Param, 0, len(d.Params))
	for _, p := range d.Params {
		params = append(params, Param{Name: p.Name, Type: resolveTypeInfo(p.Type)})
	}
	return &FuncSymbol{
		Name:       d.Name,
		Params:     params,
		ReturnType: resolveTypeInfo(d.ReturnType),
		Private:    d.Private,
		Override:   d.Override,
		IsMethod:   isMethod,
		OwnerClass: owner,
		Pos:        d.Position,
	}
}

// ---- Base-class resolution (runs before any body is analyzed, so a
// method in one class can reference another class regardless of
// declaration order) ----

func (a *Analyzer) resolveBaseClasses() {
	for _, name := range a.classOrder {
		cs := a.classes[name]
		if cs.BaseName == "" {
			continue
		}
		base, ok := a.classes[cs.BaseName]
		if !ok {
			a.addError(cs.Pos, "Base class '%s' not found", cs.BaseName)
			continue
		}
		cs.Base = base
	}

	for _, name := range a.classOrder {
		cs := a.classes[name]
		seen := make(map[string]bool)
		for cur := cs; cur != nil; cur = cur.Base {
			if seen[cur.Name] {
				a.addError(cs.Pos, "Cyclic inheritance involving class '%s'", cs.Name)
				cs.Base = nil
				break
			}
			seen[cur.Name] = true
		}
	}
}

// ---- Pass 2: class body analysis ----

func (a *Analyzer) analyzeClassBodies(program *ast.Program) {
	for _, decl := range program.Decls {
		d, ok := decl.(*ast.ClassDecl)
		if !ok {
			continue
		}
		cs := a.classes[d.Name]
		if cs == nil {
			continue // duplicate class name, already reported
		}
		a.currentClass = cs
		for _, m := range d.Methods {
			a.analyzeMethodBody(cs, m)
		}
		a.currentClass = nil
	}
}

func (a *Analyzer) analyzeMethodBody(cs *ClassSymbol, m *ast.FuncDecl) {
	fs := cs.Methods[m.Name]
	if fs == nil {
		return // duplicate method name, already reported
	}
	a.currentFunc = fs

	paramScope := NewScope(a.global)
	paramScope.Define("this", &VarSymbol{Name: "this", Type: TypeInfo{Name: cs.Name}})
	a.defineParams(paramScope, m.Params)

	if m.Body != nil {
		a.analyzeBlock(m.Body, paramScope)
	}
	a.currentFunc = nil
}

// ---- Pass 3: free-function body analysis ----

func (a *Analyzer) analyzeFreeFunctionBodies(program *ast.Program) {
	for _, decl := range program.Decls {
		d, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		fs := a.funcs[d.Name]
		if fs == nil {
			continue // duplicate function name, already reported
		}
		a.currentFunc = fs

		paramScope := NewScope(a.global)
		a.defineParams(paramScope, d.Params)

		if d.Body != nil {
			a.analyzeBlock(d.Body, paramScope)
		}
		a.currentFunc = nil
	}
}

func (a *Analyzer) defineParams(scope *Scope, params []*ast.Param) {
	for _, p := range params {
		if !scope.Define(p.Name, &VarSymbol{Name: p.Name, Type: resolveTypeInfo(p.Type)}) {
			a.addError(p.Position, "Variable '%s' already defined in this scope", p.Name)
		}
	}
}

// ---- Post-pass: exactly one main ----

func (a *Analyzer) checkMain() {
	if _, ok := a.funcs["main"]; !ok {
		a.addError(token.Position{Line: 0, Column: 0}, "No 'main' function defined")
	}
}

// ---- Statements ----

func (a *Analyzer) analyzeBlock(block *ast.BlockStmt, parent *Scope) *Scope {
	scope := NewScope(parent)
	for _, stmt := range block.Stmts {
		a.analyzeStmt(stmt, scope)
	}
	return scope
}

func (a *Analyzer) analyzeStmt(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s, scope)
	case *ast.AssignStmt:
		a.analyzeAssign(s, scope)
	case *ast.IfStmt:
		a.analyzeIf(s, scope)
	case *ast.WhileStmt:
		a.analyzeWhile(s, scope)
	case *ast.ForStmt:
		a.analyzeFor(s, scope)
	case *ast.ReturnStmt:
		a.analyzeReturn(s, scope)
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.addError(s.Position, "'break' outside of loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.addError(s.Position, "'continue' outside of loop")
		}
	case *ast.BlockStmt:
		a.analyzeBlock(s, scope)
	case *ast.ExprStmt:
		a.analyzeExpr(s.Expr, scope)
	}
}

func (a *Analyzer) analyzeVarDecl(s *ast.VarDecl, scope *Scope) {
	hasDeclared := s.Type != nil
	hasInit := s.Init != nil

	var declared, initType, finalType TypeInfo
	if hasDeclared {
		declared = resolveTypeInfo(s.Type)
	}
	if hasInit {
		initType = a.analyzeExpr(s.Init, scope)
	}

	switch {
	case hasDeclared && hasInit:
		if !a.canAssign(initType, declared) {
			a.addError(s.Position, "Type mismatch: cannot assign %s to %s", initType, declared)
		}
		finalType = declared
	case hasDeclared:
		finalType = declared
	case hasInit:
		finalType = initType
	default:
		a.addError(s.Position, "Cannot infer type for variable '%s'", s.Name)
		finalType = Void
	}

	if !scope.Define(s.Name, &VarSymbol{Name: s.Name, Type: finalType}) {
		a.addError(s.Position, "Variable '%s' already defined in this scope", s.Name)
	}
}

func (a *Analyzer) analyzeAssign(s *ast.AssignStmt, scope *Scope) {
	targetType := a.analyzeExpr(s.Target, scope)
	valueType := a.analyzeExpr(s.Value, scope)

	if s.Op == token.ASSIGN {
		if !a.canAssign(valueType, targetType) {
			a.addError(s.Position, "Type mismatch in assignment: %s to %s", valueType, targetType)
		}
		return
	}
	if !targetType.IsNumeric() || !valueType.IsNumeric() {
		a.addError(s.Position, "Compound assignment requires numeric types")
	}
}

func (a *Analyzer) analyzeIf(s *ast.IfStmt, scope *Scope) {
	condType := a.analyzeExpr(s.Cond, scope)
	if !condType.IsBoolOrNumeric() {
		a.addError(s.Cond.Pos(), "Condition must be a boolean or numeric expression")
	}
	a.analyzeBlock(s.Then, scope)
	if s.Else != nil {
		a.analyzeStmt(s.Else, scope)
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStmt, scope *Scope) {
	condType := a.analyzeExpr(s.Cond, scope)
	if !condType.IsBoolOrNumeric() {
		a.addError(s.Cond.Pos(), "Condition must be a boolean or numeric expression")
	}
	a.loopDepth++
	a.analyzeBlock(s.Body, scope)
	a.loopDepth--
}

func (a *Analyzer) analyzeFor(s *ast.ForStmt, scope *Scope) {
	forScope := NewScope(scope)
	if s.Init != nil {
		a.analyzeStmt(s.Init, forScope)
	}
	if s.Cond != nil {
		condType := a.analyzeExpr(s.Cond, forScope)
		if !condType.IsBoolOrNumeric() {
			a.addError(s.Cond.Pos(), "Condition must be a boolean or numeric expression")
		}
	}
	if s.Update != nil {
		a.analyzeStmt(s.Update, forScope)
	}

	a.loopDepth++
	bodyScope := NewScope(forScope)
	for _, st := range s.Body.Stmts {
		a.analyzeStmt(st, bodyScope)
	}
	a.loopDepth--
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt, scope *Scope) {
	if a.currentFunc == nil {
		a.addError(s.Position, "'return' outside of function")
		return
	}
	want := a.currentFunc.ReturnType
	if s.Value != nil {
		valType := a.analyzeExpr(s.Value, scope)
		if want.Name == "void" {
			a.addError(s.Position, "Return type mismatch: expected void, got %s", valType)
		} else if !a.canAssign(valType, want) {
			a.addError(s.Position, "Return type mismatch: expected %s, got %s", want, valType)
		}
		return
	}
	if want.Name != "void" {
		a.addError(s.Position, "Expected return value of type %s", want)
	}
}
