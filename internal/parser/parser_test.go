package parser

import (
	"testing"

	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/lexer"
	"github.com/jlallas384/plc/internal/token"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			t.Errorf("parse error: %s at %s", e.Message, e.Pos)
		}
		t.FailNow()
	}
	return program
}

func TestParseFreeFunction(t *testing.T) {
	program := parseProgram(t, `fn main(): int { return 0; }`)
	if len(program.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(program.Decls))
	}
	fn, ok := program.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", program.Decls[0])
	}
	if fn.Name != "main" {
		t.Fatalf("expected name 'main', got %q", fn.Name)
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "int" {
		t.Fatalf("expected return type int, got %v", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	lit, ok := ret.Value.(*ast.IntLiteral)
	if !ok || lit.Value != 0 {
		t.Fatalf("expected return 0, got %v", ret.Value)
	}
}

func TestParseClassWithInheritanceAndPrivateMember(t *testing.T) {
	program := parseProgram(t, `
class Animal {
	#name: string
	fn speak(): int { return 0; }
}
class Dog : Animal {
	fn !speak(): int { return 1; }
}
`)
	if len(program.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(program.Decls))
	}
	animal := program.Decls[0].(*ast.ClassDecl)
	if len(animal.Fields) != 1 || !animal.Fields[0].Private || animal.Fields[0].Name != "name" {
		t.Fatalf("unexpected fields: %+v", animal.Fields)
	}
	if len(animal.Methods) != 1 || animal.Methods[0].Name != "speak" {
		t.Fatalf("unexpected methods: %+v", animal.Methods)
	}

	dog := program.Decls[1].(*ast.ClassDecl)
	if dog.BaseName != "Animal" {
		t.Fatalf("expected base class Animal, got %q", dog.BaseName)
	}
	if !dog.Methods[0].Override {
		t.Fatalf("expected speak override flag set")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	program := parseProgram(t, `fn f(): int { return 1 + 2 * 3 == 7 && true; }`)
	fn := program.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)

	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != token.ANDAND {
		t.Fatalf("expected top-level &&, got %#v", ret.Value)
	}
	eq, ok := top.Left.(*ast.BinaryExpr)
	if !ok || eq.Op != token.EQ {
		t.Fatalf("expected == under &&, got %#v", top.Left)
	}
	sum, ok := eq.Left.(*ast.BinaryExpr)
	if !ok || sum.Op != token.PLUS {
		t.Fatalf("expected + under ==, got %#v", eq.Left)
	}
	mul, ok := sum.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != token.STAR {
		t.Fatalf("expected * to bind tighter than +, got %#v", sum.Right)
	}
}

func TestParseForLoop(t *testing.T) {
	program := parseProgram(t, `
fn f(): void {
	for (let i: int = 0; i < 10; i += 1) {
		continue;
	}
}`)
	fn := program.Decls[0].(*ast.FuncDecl)
	forStmt, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", fn.Body.Stmts[0])
	}
	if _, ok := forStmt.Init.(*ast.VarDecl); !ok {
		t.Fatalf("expected VarDecl init, got %T", forStmt.Init)
	}
	if forStmt.Cond == nil {
		t.Fatalf("expected a condition")
	}
	update, ok := forStmt.Update.(*ast.AssignStmt)
	if !ok || update.Op != token.PLUSEQ {
		t.Fatalf("expected += update, got %#v", forStmt.Update)
	}
}

func TestParseNewAndMethodCall(t *testing.T) {
	program := parseProgram(t, `fn f(): void { let a: Animal = new Animal(1, 2); a.speak(); }`)
	fn := program.Decls[0].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDecl)
	newExpr, ok := decl.Init.(*ast.NewExpr)
	if !ok || newExpr.ClassName != "Animal" || len(newExpr.Args) != 2 {
		t.Fatalf("unexpected new expr: %#v", decl.Init)
	}
	exprStmt := fn.Body.Stmts[1].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", exprStmt.Expr)
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Member != "speak" {
		t.Fatalf("expected member 'speak', got %#v", call.Callee)
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	l := lexer.New(`fn broken( { return 0; } fn main(): int { return 0; }`)
	p := New(l)
	program := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	found := false
	for _, d := range program.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name == "main" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still find 'main'")
	}
}

func TestBreakOutsideLoopStillParses(t *testing.T) {
	// Parsing never rejects break/continue outside a loop; that is a
	// semantic-analysis concern.
	program := parseProgram(t, `fn main(): int { break; return 0; }`)
	fn := program.Decls[0].(*ast.FuncDecl)
	if _, ok := fn.Body.Stmts[0].(*ast.BreakStmt); !ok {
		t.Fatalf("expected BreakStmt, got %T", fn.Body.Stmts[0])
	}
}
