// Package codegen lowers a type-checked program into a single C
// translation unit, following spec.md §4.4's layout order and name
// mangling rules, with the REDESIGN FLAGS fixes applied: embedded (not
// flattened) field inheritance, an invoked vtable-initialization
// bootstrap, a `for` loop lowered directly to a C `for`, static-type-
// driven `print`, and `string == string` lowered to `strcmp`.
//
// Grounded on original_source/compiler/codegen/generator.py for the
// translation algorithm itself, and on the teacher's strings.Builder-
// based emission style for how the pieces are assembled.
package codegen

import (
	"fmt"
	"strings"

	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/semantic"
	"github.com/jlallas384/plc/internal/token"
)

// VtableStrategy selects how vtables are initialized before first use,
// resolving the Open Question in spec.md §9.
type VtableStrategy string

const (
	VtableBootstrap VtableStrategy = "bootstrap"
	VtableLazy      VtableStrategy = "lazy"
)

// Options carries the code-generation knobs exposed via .plc.yaml /
// --vtable-init (see internal/config).
type Options struct {
	VtableInit VtableStrategy
	Indent     string
}

// DefaultOptions matches the behavior described in SPEC_FULL.md §4: a
// bootstrap call inserted at the top of main, four-space indentation.
func DefaultOptions() Options {
	return Options{VtableInit: VtableBootstrap, Indent: "    "}
}

// Generator translates an analyzed Program into C source text. It
// consults the Analyzer's exprTypes memo (via TypeOf) to decide print's
// format string and to distinguish string equality from numeric
// equality, both REDESIGN FLAGS fixes over the reference implementation.
type Generator struct {
	analyzer *semantic.Analyzer
	opts     Options
	buf      strings.Builder

	classDecls map[string]*ast.ClassDecl
	funcDecls  map[string]*ast.FuncDecl
}

// New constructs a Generator. analyzer must have already run Analyze
// over the same program that will be passed to Generate, with no
// diagnostics (codegen assumes a well-typed program).
func New(analyzer *semantic.Analyzer, opts Options) *Generator {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	if opts.VtableInit == "" {
		opts.VtableInit = VtableBootstrap
	}
	return &Generator{analyzer: analyzer, opts: opts}
}

// Generate emits the full translation unit for program.
func (g *Generator) Generate(program *ast.Program) string {
	g.buf.Reset()
	g.indexDecls(program)

	classes := orderClasses(g.analyzer.Classes())
	funcs := g.analyzer.Funcs()

	g.emitIncludes()
	g.emitForwardTypedefs(classes)
	g.emitStructs(classes)
	g.emitVtableTypes(classes)
	g.emitFreeFuncPrototypes(funcs)

	for _, cs := range classes {
		g.emitClassMethods(cs)
		g.emitVtableInit(cs)
	}
	if g.opts.VtableInit == VtableBootstrap {
		g.emitBootstrapFunc(classes)
	}
	for _, name := range funcOrderFromProgram(program) {
		if fd := g.funcDecls[name]; fd != nil {
			g.emitFreeFunc(fd)
		}
	}

	return g.buf.String()
}

func (g *Generator) indexDecls(program *ast.Program) {
	g.classDecls = make(map[string]*ast.ClassDecl)
	g.funcDecls = make(map[string]*ast.FuncDecl)
	for _, d := range program.Decls {
		switch decl := d.(type) {
		case *ast.ClassDecl:
			g.classDecls[decl.Name] = decl
		case *ast.FuncDecl:
			g.funcDecls[decl.Name] = decl
		}
	}
}

func funcOrderFromProgram(program *ast.Program) []string {
	var order []string
	for _, d := range program.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			order = append(order, fd.Name)
		}
	}
	return order
}

// orderClasses topologically sorts classes so that every base class is
// emitted before its derived classes, which struct embedding requires.
func orderClasses(classes []*semantic.ClassSymbol) []*semantic.ClassSymbol {
	var order []*semantic.ClassSymbol
	visited := make(map[string]bool)
	var visit func(cs *semantic.ClassSymbol)
	visit = func(cs *semantic.ClassSymbol) {
		if cs == nil || visited[cs.Name] {
			return
		}
		visited[cs.Name] = true
		visit(cs.Base)
		order = append(order, cs)
	}
	for _, cs := range classes {
		visit(cs)
	}
	return order
}

func (g *Generator) line(indent int, format string, args ...any) {
	g.buf.WriteString(strings.Repeat(g.opts.Indent, indent))
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *Generator) emitIncludes() {
	g.line(0, "#include <stdio.h>")
	g.line(0, "#include <stdlib.h>")
	g.line(0, "#include <string.h>")
	g.line(0, "#include <stdbool.h>")
	g.buf.WriteByte('\n')
}

func (g *Generator) emitForwardTypedefs(classes []*semantic.ClassSymbol) {
	for _, cs := range classes {
		g.line(0, "typedef struct %s %s;", cs.Name, cs.Name)
	}
	if len(classes) > 0 {
		g.buf.WriteByte('\n')
	}
}

// ---- Type lowering (spec.md §4.4's "Type lowering" table) ----

func (g *Generator) cBaseType(t semantic.TypeInfo) string {
	switch t.Name {
	case "int":
		return "int"
	case "float":
		return "double"
	case "bool":
		return "bool"
	case "char":
		return "char"
	case "string":
		return "const char*"
	case "void":
		return "void"
	default:
		return t.Name + "*"
	}
}

func (g *Generator) cType(t semantic.TypeInfo) string {
	base := g.cBaseType(t)
	if t.IsArray {
		return base + "*"
	}
	return base
}

// ---- Structs (spec.md §4.4 step 3; embedding layout per §9) ----

// emitStructs lays out each struct with the embedded base, when present,
// as the true first member (offset 0), so `(Base*)d` for a `Derived*`
// d overlays exactly onto the embedded base subobject. The class's own
// __vtable field comes after it; field order doesn't affect the
// `o->__vtable->m(o, ...)` call site, which resolves by name. The
// field type is `struct %sVtable*` rather than the `%sVtable` typedef,
// since the typedef isn't emitted until emitVtableTypes runs — a
// pointer to an as-yet-incomplete struct tag is legal C.
func (g *Generator) emitStructs(classes []*semantic.ClassSymbol) {
	for _, cs := range classes {
		g.line(0, "struct %s {", cs.Name)
		if cs.Base != nil {
			g.line(1, "%s base;", cs.Base.Name)
		}
		g.line(1, "struct %sVtable* __vtable;", cs.Name)
		for _, name := range cs.FieldOrder {
			f := cs.Fields[name]
			g.line(1, "%s %s;", g.cType(f.Type), f.Name)
		}
		g.line(0, "};")
		g.buf.WriteByte('\n')
	}
}

// ---- Vtables (spec.md §4.4 step 4) ----

// reachableMethods returns the names of every method cs can dispatch,
// in stable slot order: base-declared names first (recursively), then
// names first introduced at this level, excluding the constructor
// (which is never virtual).
func reachableMethods(cs *semantic.ClassSymbol) []string {
	var order []string
	seen := make(map[string]bool)
	if cs.Base != nil {
		for _, name := range reachableMethods(cs.Base) {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, name := range cs.MethodOrder {
		if name == cs.Name || seen[name] {
			continue
		}
		order = append(order, name)
		seen[name] = true
	}
	return order
}

func (g *Generator) emitVtableTypes(classes []*semantic.ClassSymbol) {
	for _, cs := range classes {
		g.line(0, "typedef struct %sVtable {", cs.Name)
		for _, name := range reachableMethods(cs) {
			fs, _ := cs.FindMethod(name)
			g.line(1, "%s (*%s)(%s);", g.cType(fs.ReturnType), name, g.methodParamList(cs, fs))
		}
		g.line(0, "} %sVtable;", cs.Name)
		g.line(0, "static %sVtable %s_vtable_instance;", cs.Name, cs.Name)
		if g.opts.VtableInit == VtableLazy {
			g.line(0, "static void %s_vtable_init(void);", cs.Name)
		}
		g.buf.WriteByte('\n')
	}
}

// methodParamList renders a vtable slot's or method function's
// parameter list: a leading `self` of cs's own pointer type, per
// spec.md §4.4's "leading C* self parameter" rule, followed by fs's
// declared parameters.
func (g *Generator) methodParamList(cs *semantic.ClassSymbol, fs *semantic.FuncSymbol) string {
	parts := []string{cs.Name + "* self"}
	for _, p := range fs.Params {
		parts = append(parts, g.cType(p.Type)+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) freeFuncParamList(fs *semantic.FuncSymbol) string {
	if len(fs.Params) == 0 {
		return "void"
	}
	parts := make([]string, 0, len(fs.Params))
	for _, p := range fs.Params {
		parts = append(parts, g.cType(p.Type)+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) emitFreeFuncPrototypes(funcs []*semantic.FuncSymbol) {
	for _, fs := range funcs {
		g.line(0, "%s %s(%s);", g.cType(fs.ReturnType), fs.Name, g.freeFuncParamList(fs))
	}
	if len(funcs) > 0 {
		g.buf.WriteByte('\n')
	}
}

// ---- Vtable initialization (spec.md §4.4 step 6; Open Question
// resolution in SPEC_FULL.md §4: bootstrap call from main, selectable
// to a lazy per-class guard) ----

func (g *Generator) emitVtableInit(cs *semantic.ClassSymbol) {
	g.line(0, "static void %s_vtable_init(void) {", cs.Name)
	if g.opts.VtableInit == VtableLazy {
		g.line(1, "static bool initialized = false;")
		g.line(1, "if (initialized) return;")
		g.line(1, "initialized = true;")
		if cs.Base != nil {
			g.line(1, "%s_vtable_init();", cs.Base.Name)
		}
	}
	for _, name := range reachableMethods(cs) {
		fs, declClass := cs.FindMethod(name)
		impl := declClass + "_" + name
		if declClass == cs.Name {
			g.line(1, "%s_vtable_instance.%s = %s;", cs.Name, name, impl)
		} else {
			g.line(1, "%s_vtable_instance.%s = (%s (*)(%s))%s;",
				cs.Name, name, g.cType(fs.ReturnType), g.methodParamList(cs, fs), impl)
		}
	}
	g.line(0, "}")
	g.buf.WriteByte('\n')
}

func (g *Generator) emitBootstrapFunc(classes []*semantic.ClassSymbol) {
	g.line(0, "static void __plc_init_vtables(void) {")
	for _, cs := range classes {
		g.line(1, "%s_vtable_init();", cs.Name)
	}
	g.line(0, "}")
	g.buf.WriteByte('\n')
}

// ---- Class methods (spec.md §4.4 step 6; name mangling per §4.4) ----

func (g *Generator) emitClassMethods(cs *semantic.ClassSymbol) {
	decl := g.classDecls[cs.Name]
	if decl == nil {
		return
	}
	for _, m := range decl.Methods {
		fs := cs.Methods[m.Name]
		if fs == nil {
			continue
		}
		if m.Name == cs.Name {
			g.emitConstructor(cs, m)
		} else {
			g.emitMethod(cs, fs, m)
		}
	}
	if cs.Constructor() == nil {
		g.emitConstructor(cs, nil)
	}
}

// emitConstructor emits C_new; m is nil for a class that declares no
// constructor, which gets a zero-argument C_new with no body statements.
// Every embedded base's __vtable is pointed at this class's vtable, so a
// call through a base-typed reference reaches the most-derived method.
func (g *Generator) emitConstructor(cs *semantic.ClassSymbol, m *ast.FuncDecl) {
	params := ""
	if ctor := cs.Constructor(); ctor != nil {
		params = g.paramListNoSelf(ctor)
	}
	g.line(0, "%s* %s_new(%s) {", cs.Name, cs.Name, params)
	if g.opts.VtableInit == VtableLazy {
		g.line(1, "%s_vtable_init();", cs.Name)
	}
	g.line(1, "%s* self = malloc(sizeof(%s));", cs.Name, cs.Name)
	g.line(1, "self->__vtable = &%s_vtable_instance;", cs.Name)
	path := "self->"
	for b := cs.Base; b != nil; b = b.Base {
		path += "base."
		g.line(1, "%s__vtable = (struct %sVtable*)&%s_vtable_instance;", path, b.Name, cs.Name)
	}
	if m != nil && m.Body != nil {
		for _, stmt := range m.Body.Stmts {
			g.emitStmt(stmt, cs, 1)
		}
	}
	g.line(1, "return self;")
	g.line(0, "}")
	g.buf.WriteByte('\n')
}

func (g *Generator) paramListNoSelf(fs *semantic.FuncSymbol) string {
	parts := make([]string, 0, len(fs.Params))
	for _, p := range fs.Params {
		parts = append(parts, g.cType(p.Type)+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) emitMethod(cs *semantic.ClassSymbol, fs *semantic.FuncSymbol, m *ast.FuncDecl) {
	g.line(0, "%s %s_%s(%s) {", g.cType(fs.ReturnType), cs.Name, m.Name, g.methodParamList(cs, fs))
	if m.Body != nil {
		for _, stmt := range m.Body.Stmts {
			g.emitStmt(stmt, cs, 1)
		}
	}
	g.line(0, "}")
	g.buf.WriteByte('\n')
}

func (g *Generator) emitFreeFunc(fd *ast.FuncDecl) {
	fs := g.funcByName(fd.Name)
	if fs == nil {
		return
	}
	isMain := fd.Name == "main"
	g.line(0, "%s %s(%s) {", g.cType(fs.ReturnType), fd.Name, g.freeFuncParamList(fs))
	if isMain && g.opts.VtableInit == VtableBootstrap {
		g.line(1, "__plc_init_vtables();")
	}
	if fd.Body != nil {
		for _, stmt := range fd.Body.Stmts {
			g.emitStmt(stmt, nil, 1)
		}
	}
	g.line(0, "}")
	g.buf.WriteByte('\n')
}

func (g *Generator) funcByName(name string) *semantic.FuncSymbol {
	for _, fs := range g.analyzer.Funcs() {
		if fs.Name == name {
			return fs
		}
	}
	return nil
}

// ---- Statements ----

// emitStmt lowers a single statement at the given indent level. cs is
// the enclosing class (nil inside a free function), needed to resolve
// `this`/field paths.
func (g *Generator) emitStmt(stmt ast.Statement, cs *semantic.ClassSymbol, indent int) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.line(indent, "%s;", g.varDeclText(s, cs))
	case *ast.AssignStmt:
		g.line(indent, "%s %s %s;", g.expr(s.Target, cs), s.Op, g.expr(s.Value, cs))
	case *ast.IfStmt:
		g.line(indent, "if (%s) {", g.expr(s.Cond, cs))
		for _, st := range s.Then.Stmts {
			g.emitStmt(st, cs, indent+1)
		}
		if s.Else != nil {
			g.line(indent, "} else {")
			g.emitElseBody(s.Else, cs, indent+1)
		}
		g.line(indent, "}")
	case *ast.WhileStmt:
		g.line(indent, "while (%s) {", g.expr(s.Cond, cs))
		for _, st := range s.Body.Stmts {
			g.emitStmt(st, cs, indent+1)
		}
		g.line(indent, "}")
	case *ast.ForStmt:
		g.emitFor(s, cs, indent)
	case *ast.ReturnStmt:
		if s.Value != nil {
			g.line(indent, "return %s;", g.expr(s.Value, cs))
		} else {
			g.line(indent, "return;")
		}
	case *ast.BreakStmt:
		g.line(indent, "break;")
	case *ast.ContinueStmt:
		g.line(indent, "continue;")
	case *ast.BlockStmt:
		g.line(indent, "{")
		for _, st := range s.Stmts {
			g.emitStmt(st, cs, indent+1)
		}
		g.line(indent, "}")
	case *ast.ExprStmt:
		g.line(indent, "%s;", g.expr(s.Expr, cs))
	}
}

// emitElseBody renders an else clause inside the `} else {` brace the
// caller opened and later closes: s is either the single nested
// *ast.IfStmt of an `else if` chain, emitted as an if with its own
// closing brace, or a *ast.BlockStmt from a plain `else`, whose
// statements are emitted directly.
func (g *Generator) emitElseBody(s ast.Statement, cs *semantic.ClassSymbol, indent int) {
	if ifs, ok := s.(*ast.IfStmt); ok {
		g.line(indent-1, "if (%s) {", g.expr(ifs.Cond, cs))
		for _, st := range ifs.Then.Stmts {
			g.emitStmt(st, cs, indent)
		}
		if ifs.Else != nil {
			g.line(indent-1, "} else {")
			g.emitElseBody(ifs.Else, cs, indent)
		}
		g.line(indent-1, "}")
		return
	}
	if block, ok := s.(*ast.BlockStmt); ok {
		for _, st := range block.Stmts {
			g.emitStmt(st, cs, indent)
		}
		return
	}
	g.emitStmt(s, cs, indent)
}

// emitFor lowers directly to a true C for-loop, per the REDESIGN FLAGS
// fix: continue then runs the update clause exactly as C defines it,
// with no translator-introduced gap.
func (g *Generator) emitFor(s *ast.ForStmt, cs *semantic.ClassSymbol, indent int) {
	initText := ""
	if s.Init != nil {
		initText = g.clauseText(s.Init, cs)
	}
	condText := "1"
	if s.Cond != nil {
		condText = g.expr(s.Cond, cs)
	}
	updateText := ""
	if s.Update != nil {
		updateText = g.clauseText(s.Update, cs)
	}
	g.line(indent, "for (%s; %s; %s) {", initText, condText, updateText)
	for _, st := range s.Body.Stmts {
		g.emitStmt(st, cs, indent+1)
	}
	g.line(indent, "}")
}

// clauseText renders a statement as it appears inside a for-header
// clause: no trailing semicolon, no indentation.
func (g *Generator) clauseText(stmt ast.Statement, cs *semantic.ClassSymbol) string {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return g.varDeclText(s, cs)
	case *ast.AssignStmt:
		return fmt.Sprintf("%s %s %s", g.expr(s.Target, cs), s.Op, g.expr(s.Value, cs))
	case *ast.ExprStmt:
		return g.expr(s.Expr, cs)
	}
	return ""
}

func (g *Generator) varDeclText(s *ast.VarDecl, cs *semantic.ClassSymbol) string {
	t := g.varType(s)
	if s.Init != nil {
		return fmt.Sprintf("%s %s = %s", g.cType(t), s.Name, g.expr(s.Init, cs))
	}
	return fmt.Sprintf("%s %s", g.cType(t), s.Name)
}

// varType resolves a declared variable's TypeInfo the same way the
// semantic analyzer did: the annotation if present, else the
// initializer's inferred type.
func (g *Generator) varType(s *ast.VarDecl) semantic.TypeInfo {
	if s.Type != nil {
		return semantic.TypeInfo{Name: s.Type.Name, IsArray: s.Type.IsArray}
	}
	if s.Init != nil {
		if t, ok := g.analyzer.TypeOf(s.Init); ok {
			return t
		}
	}
	return semantic.Void
}

// ---- Expressions ----

func cIdent(name string) string {
	if name == "this" {
		return "self"
	}
	return name
}

func (g *Generator) expr(e ast.Expression, cs *semantic.ClassSymbol) string {
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return ex.Raw
	case *ast.FloatLiteral:
		return ex.Raw
	case *ast.StringLiteral:
		return ex.Raw
	case *ast.CharLiteral:
		return ex.Raw
	case *ast.BoolLiteral:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.Identifier:
		return cIdent(ex.Name)
	case *ast.BinaryExpr:
		return g.binaryExpr(ex, cs)
	case *ast.UnaryExpr:
		return g.unaryExpr(ex, cs)
	case *ast.CallExpr:
		return g.callExpr(ex, cs)
	case *ast.MemberExpr:
		return g.memberPath(ex, cs)
	case *ast.NewExpr:
		return g.newExpr(ex, cs)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", g.expr(ex.Array, cs), g.expr(ex.Index, cs))
	}
	return ""
}

var opText = map[token.Kind]string{
	token.PLUS: "+", token.MINUS: "-", token.STAR: "*", token.SLASH: "/", token.PERCENT: "%",
	token.LT: "<", token.LTE: "<=", token.GT: ">", token.GTE: ">=",
	token.ANDAND: "&&", token.OROR: "||",
}

// binaryExpr lowers `==`/`!=` between strings to strcmp, per the Open
// Question resolution in SPEC_FULL.md §4 (content comparison, not
// pointer comparison); every other binary operator maps directly.
func (g *Generator) binaryExpr(e *ast.BinaryExpr, cs *semantic.ClassSymbol) string {
	if e.Op == token.EQ || e.Op == token.NEQ {
		if t, ok := g.analyzer.TypeOf(e.Left); ok && t.Name == "string" && !t.IsArray {
			cmp := fmt.Sprintf("strcmp(%s, %s) == 0", g.expr(e.Left, cs), g.expr(e.Right, cs))
			if e.Op == token.NEQ {
				return "!(" + cmp + ")"
			}
			return "(" + cmp + ")"
		}
		op := "=="
		if e.Op == token.NEQ {
			op = "!="
		}
		return fmt.Sprintf("(%s %s %s)", g.expr(e.Left, cs), op, g.expr(e.Right, cs))
	}
	return fmt.Sprintf("(%s %s %s)", g.expr(e.Left, cs), opText[e.Op], g.expr(e.Right, cs))
}

func (g *Generator) unaryExpr(e *ast.UnaryExpr, cs *semantic.ClassSymbol) string {
	op := "-"
	if e.Op == token.BANG {
		op = "!"
	}
	return fmt.Sprintf("(%s%s)", op, g.expr(e.Operand, cs))
}

// callExpr lowers a call expression: the `print`/`read` built-ins, a
// free-function call, or (via memberPath) a virtual method call.
func (g *Generator) callExpr(e *ast.CallExpr, cs *semantic.ClassSymbol) string {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		switch ident.Name {
		case "print":
			return g.printCall(e, cs)
		case "read":
			return g.readCall(e, cs)
		}
		args := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, g.expr(a, cs))
		}
		return fmt.Sprintf("%s(%s)", ident.Name, strings.Join(args, ", "))
	}

	if member, ok := e.Callee.(*ast.MemberExpr); ok {
		receiver := g.expr(member.Receiver, cs)
		args := make([]string, 0, len(e.Args)+1)
		args = append(args, receiver)
		for _, a := range e.Args {
			args = append(args, g.expr(a, cs))
		}
		return fmt.Sprintf("%s->__vtable->%s(%s)", receiver, member.Member, strings.Join(args, ", "))
	}
	return ""
}

// printCall dispatches on the static type the semantic analyzer
// recorded for the argument, fixing the unsound syntax-driven format
// selection flagged in spec.md §9.
func (g *Generator) printCall(e *ast.CallExpr, cs *semantic.ClassSymbol) string {
	if len(e.Args) != 1 {
		return "printf(\"\\n\")"
	}
	arg := e.Args[0]
	argText := g.expr(arg, cs)
	t, ok := g.analyzer.TypeOf(arg)
	if !ok || t.IsArray {
		return fmt.Sprintf("printf(\"%%s\\n\", %s)", argText)
	}
	switch t.Name {
	case "string":
		return fmt.Sprintf("printf(\"%%s\\n\", %s)", argText)
	case "int":
		return fmt.Sprintf("printf(\"%%d\\n\", %s)", argText)
	case "float":
		return fmt.Sprintf("printf(\"%%f\\n\", %s)", argText)
	case "char":
		return fmt.Sprintf("printf(\"%%c\\n\", %s)", argText)
	case "bool":
		return fmt.Sprintf("printf(\"%%s\\n\", (%s) ? \"true\" : \"false\")", argText)
	default:
		return fmt.Sprintf("printf(\"%%s\\n\", \"<%s>\")", t.Name)
	}
}

func (g *Generator) readCall(e *ast.CallExpr, cs *semantic.ClassSymbol) string {
	if len(e.Args) != 1 {
		return "scanf(\"%d\")"
	}
	return fmt.Sprintf("scanf(\"%%d\", &%s)", g.expr(e.Args[0], cs))
}

// memberPath lowers `obj.field` to `obj->field`, walking one `.base`
// hop per inheritance level between the receiver's static class and
// the field's declaring class, per the embedded-field layout chosen
// in SPEC_FULL.md §4.
func (g *Generator) memberPath(e *ast.MemberExpr, cs *semantic.ClassSymbol) string {
	receiver := g.expr(e.Receiver, cs)
	receiverType, ok := g.analyzer.TypeOf(e.Receiver)
	if !ok {
		return fmt.Sprintf("%s->%s", receiver, e.Member)
	}
	receiverClass, ok := g.analyzer.ClassByName(receiverType.Name)
	if !ok {
		return fmt.Sprintf("%s->%s", receiver, e.Member)
	}
	_, declClass := receiverClass.FindField(e.Member)
	hops := 0
	for cur := receiverClass; cur != nil && cur.Name != declClass; cur = cur.Base {
		hops++
	}
	path := receiver + "->"
	for i := 0; i < hops; i++ {
		path += "base."
	}
	return path + e.Member
}

func (g *Generator) newExpr(e *ast.NewExpr, cs *semantic.ClassSymbol) string {
	args := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, g.expr(a, cs))
	}
	return fmt.Sprintf("%s_new(%s)", e.ClassName, strings.Join(args, ", "))
}
