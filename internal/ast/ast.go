// Package ast defines the abstract syntax tree produced by the parser.
//
// Every node carries an optional source Position (the zero Position,
// {0,0}, marks a synthetic node with no source location). Node values
// are immutable once built: the parser constructs them bottom-up and no
// later stage mutates them, only attaches auxiliary information via the
// semantic analyzer's separate annotation maps (see internal/semantic).
package ast

import "github.com/jlallas384/plc/internal/token"

// Node is the root interface implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Expression is any node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that executes for effect.
type Statement interface {
	Node
	statementNode()
}

// Decl is a top-level declaration: a ClassDecl or a FuncDecl.
type Decl interface {
	Node
	declNode()
}

// Program is the root of the tree: an ordered sequence of declarations.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() token.Position { return token.Position{} }

// Type is a type annotation: a primitive name or a class identifier,
// optionally an array of that element type.
type Type struct {
	Position token.Position
	Name     string
	IsArray  bool
}

func (t *Type) Pos() token.Position { return t.Position }

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	if t.IsArray {
		return t.Name + "[]"
	}
	return t.Name
}

// ---- Expressions ----

type IntLiteral struct {
	Position token.Position
	Value    int64
	Raw      string
}

func (e *IntLiteral) Pos() token.Position { return e.Position }
func (*IntLiteral) expressionNode()       {}

type FloatLiteral struct {
	Position token.Position
	Value    float64
	Raw      string
}

func (e *FloatLiteral) Pos() token.Position { return e.Position }
func (*FloatLiteral) expressionNode()       {}

// StringLiteral.Raw preserves the literal verbatim, including the
// surrounding quotes and any backslash escapes, per spec.md §3.
type StringLiteral struct {
	Position token.Position
	Raw      string
}

func (e *StringLiteral) Pos() token.Position { return e.Position }
func (*StringLiteral) expressionNode()       {}

type CharLiteral struct {
	Position token.Position
	Raw      string
}

func (e *CharLiteral) Pos() token.Position { return e.Position }
func (*CharLiteral) expressionNode()       {}

type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (e *BoolLiteral) Pos() token.Position { return e.Position }
func (*BoolLiteral) expressionNode()       {}

type Identifier struct {
	Position token.Position
	Name     string
}

func (e *Identifier) Pos() token.Position { return e.Position }
func (*Identifier) expressionNode()       {}

// BinaryExpr covers the full fixed operator set: arithmetic, relational,
// equality, and logical and/or. Op is the token kind of the operator.
type BinaryExpr struct {
	Position token.Position
	Op       token.Kind
	Left     Expression
	Right    Expression
}

func (e *BinaryExpr) Pos() token.Position { return e.Position }
func (*BinaryExpr) expressionNode()       {}

// UnaryExpr covers unary '-' (negation) and '!' (logical not).
type UnaryExpr struct {
	Position token.Position
	Op       token.Kind
	Operand  Expression
}

func (e *UnaryExpr) Pos() token.Position { return e.Position }
func (*UnaryExpr) expressionNode()       {}

// CallExpr applies Args to Callee, which may be any expression (a bare
// identifier for a free-function call, or a MemberExpr for a method
// call).
type CallExpr struct {
	Position token.Position
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) Pos() token.Position { return e.Position }
func (*CallExpr) expressionNode()       {}

// MemberExpr is `receiver.member`. Privacy is enforced from the
// member's declaration, not the access site.
type MemberExpr struct {
	Position token.Position
	Receiver Expression
	Member   string
}

func (e *MemberExpr) Pos() token.Position { return e.Position }
func (*MemberExpr) expressionNode()       {}

// NewExpr is `new ClassName(args)`.
type NewExpr struct {
	Position  token.Position
	ClassName string
	Args      []Expression
}

func (e *NewExpr) Pos() token.Position { return e.Position }
func (*NewExpr) expressionNode()       {}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	Position token.Position
	Array    Expression
	Index    Expression
}

func (e *IndexExpr) Pos() token.Position { return e.Position }
func (*IndexExpr) expressionNode()       {}

// ---- Statements ----

type VarDecl struct {
	Position token.Position
	Name     string
	Type     *Type // nil if the type is inferred from Init
	Init     Expression
}

func (s *VarDecl) Pos() token.Position { return s.Position }
func (*VarDecl) statementNode()        {}

// AssignStmt covers '=' and the five compound forms.
type AssignStmt struct {
	Position token.Position
	Op       token.Kind
	Target   Expression
	Value    Expression
}

func (s *AssignStmt) Pos() token.Position { return s.Position }
func (*AssignStmt) statementNode()        {}

type IfStmt struct {
	Position token.Position
	Cond     Expression
	Then     *BlockStmt
	Else     Statement // *BlockStmt or *IfStmt (else-if chain), or nil
}

func (s *IfStmt) Pos() token.Position { return s.Position }
func (*IfStmt) statementNode()        {}

type WhileStmt struct {
	Position token.Position
	Cond     Expression
	Body     *BlockStmt
}

func (s *WhileStmt) Pos() token.Position { return s.Position }
func (*WhileStmt) statementNode()        {}

// ForStmt models the C-style three-clause for loop. Any of Init/Cond/
// Update may be nil.
type ForStmt struct {
	Position token.Position
	Init     Statement
	Cond     Expression
	Update   Statement
	Body     *BlockStmt
}

func (s *ForStmt) Pos() token.Position { return s.Position }
func (*ForStmt) statementNode()        {}

type ReturnStmt struct {
	Position token.Position
	Value    Expression // nil for a bare `return;`
}

func (s *ReturnStmt) Pos() token.Position { return s.Position }
func (*ReturnStmt) statementNode()        {}

type BreakStmt struct{ Position token.Position }

func (s *BreakStmt) Pos() token.Position { return s.Position }
func (*BreakStmt) statementNode()        {}

type ContinueStmt struct{ Position token.Position }

func (s *ContinueStmt) Pos() token.Position { return s.Position }
func (*ContinueStmt) statementNode()        {}

type BlockStmt struct {
	Position token.Position
	Stmts    []Statement
}

func (s *BlockStmt) Pos() token.Position { return s.Position }
func (*BlockStmt) statementNode()        {}

// ExprStmt is an expression evaluated for its side effect (a bare call,
// typically).
type ExprStmt struct {
	Position token.Position
	Expr     Expression
}

func (s *ExprStmt) Pos() token.Position { return s.Position }
func (*ExprStmt) statementNode()        {}

// ---- Declarations ----

type Param struct {
	Position token.Position
	Name     string
	Type     *Type
}

// FuncDecl is both a free function and a method; it is a method when it
// appears in a ClassDecl's Methods (the semantic analyzer records this
// as FuncSymbol.IsMethod).
type FuncDecl struct {
	Position   token.Position
	Name       string
	Params     []*Param
	ReturnType *Type // nil means void
	Body       *BlockStmt
	Private    bool
	Override   bool
}

func (d *FuncDecl) Pos() token.Position { return d.Position }
func (*FuncDecl) declNode()             {}

type FieldDecl struct {
	Position token.Position
	Name     string
	Type     *Type
	Private  bool
}

// ClassDecl holds its fields and methods in source order, per the
// "Symbol tables" invariant in spec.md §3.
type ClassDecl struct {
	Position token.Position
	Name     string
	BaseName string // "" if no base class
	Fields   []*FieldDecl
	Methods  []*FuncDecl
}

func (d *ClassDecl) Pos() token.Position { return d.Position }
func (*ClassDecl) declNode()             {}
