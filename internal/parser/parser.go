// Package parser builds an AST from a token stream using single-token
// lookahead recursive descent, in the teacher's error-accumulating
// style: a parse failure is captured as a ParseError and recorded, the
// parser synchronizes to the next declaration boundary, and the whole
// Program is still returned so later stages can decide whether to run.
//
// Unlike the teacher's Pratt parser (which this package is grounded on
// for its error/diagnostic plumbing, not its expression-dispatch
// architecture), expression parsing here is a fixed chain of
// precedence-climbing methods, mirroring the reference implementation's
// parser and spec.md §4.2 directly.
package parser

import (
	"strconv"

	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/lexer"
	"github.com/jlallas384/plc/internal/token"
)

// ParseError is raised (via panic) by expect-style helpers and caught
// at the nearest declaration boundary.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e *ParseError) Error() string { return e.Message }

// Parser consumes tokens from a Lexer one at a time.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token

	errors []*ParseError
}

// New constructs a Parser over lex, priming the first lookahead token.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.cur = lex.NextToken()
	return p
}

// Errors returns every parse diagnostic recorded so far.
func (p *Parser) Errors() []*ParseError { return p.errors }

// LexerErrors forwards the diagnostics recorded by the underlying lexer.
func (p *Parser) LexerErrors() []lexer.Error { return p.lex.Errors() }

func (p *Parser) advance() token.Token {
	prev := p.cur
	p.cur = p.lex.NextToken()
	return prev
}

// expect consumes the current token if it has kind, otherwise raises a
// ParseError bound to the offending token.
func (p *Parser) expect(kind token.Kind, message string) token.Token {
	if p.cur.Kind == kind {
		return p.advance()
	}
	panic(&ParseError{Message: message, Pos: p.cur.Pos})
}

func (p *Parser) fail(message string) {
	panic(&ParseError{Message: message, Pos: p.cur.Pos})
}

func (p *Parser) consumeSemi() {
	if p.cur.Kind == token.SEMI {
		p.advance()
	}
}

var declStarters = map[token.Kind]bool{
	token.CLASS: true, token.FN: true, token.LET: true,
	token.IF: true, token.WHILE: true, token.FOR: true, token.RETURN: true,
}

// synchronize discards the offending token, then further tokens until
// the next declaration-starter keyword or EOF, per spec.md §4.2's
// error-recovery rule.
func (p *Parser) synchronize() {
	if p.cur.Kind != token.EOF {
		p.advance()
	}
	for p.cur.Kind != token.EOF {
		if declStarters[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

// ParseProgram parses a full program, collecting any declaration-level
// errors and synchronizing past them. The returned Program is non-nil
// and should only be used by later stages when Errors() is empty.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.cur.Kind != token.EOF {
		p.parseDecl(program)
	}
	return program
}

func (p *Parser) parseDecl(program *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			p.errors = append(p.errors, pe)
			p.synchronize()
		}
	}()

	switch p.cur.Kind {
	case token.CLASS:
		program.Decls = append(program.Decls, p.parseClassDecl())
	case token.FN:
		program.Decls = append(program.Decls, p.parseFreeFuncDecl())
	default:
		p.fail("Expect class or function declaration.")
	}
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	pos := p.cur.Pos
	p.expect(token.CLASS, "Expect 'class'.")
	nameTok := p.expect(token.IDENT, "Expect class name.")

	base := ""
	if p.cur.Kind == token.COLON {
		p.advance()
		baseTok := p.expect(token.IDENT, "Expect base class name.")
		base = baseTok.Literal
	}

	p.expect(token.LBRACE, "Expect '{' before class body.")

	var fields []*ast.FieldDecl
	var methods []*ast.FuncDecl
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		private := false
		if p.cur.Kind == token.HASH {
			private = true
			p.advance()
		}
		if p.cur.Kind == token.FN {
			methods = append(methods, p.parseMethodDecl(private))
		} else {
			fields = append(fields, p.parseFieldDecl(private))
		}
	}
	p.expect(token.RBRACE, "Expect '}' after class body.")

	return &ast.ClassDecl{Position: pos, Name: nameTok.Literal, BaseName: base, Fields: fields, Methods: methods}
}

func (p *Parser) parseFieldDecl(private bool) *ast.FieldDecl {
	pos := p.cur.Pos
	nameTok := p.expect(token.IDENT, "Expect field name.")
	p.expect(token.COLON, "Expect ':' after field name.")
	typ := p.parseType()
	p.consumeSemi()
	return &ast.FieldDecl{Position: pos, Name: nameTok.Literal, Type: typ, Private: private}
}

// parseMethodDecl parses the 'fn' '!'? IDENT '(' params? ')' (':' type)?
// block? production for a method whose private flag was already
// consumed by the enclosing class body.
func (p *Parser) parseMethodDecl(private bool) *ast.FuncDecl {
	pos := p.cur.Pos
	p.expect(token.FN, "Expect 'fn'.")
	override := false
	if p.cur.Kind == token.BANG {
		override = true
		p.advance()
	}
	decl := p.parseFuncTail(pos)
	decl.Private = private
	decl.Override = override
	return decl
}

// parseFreeFuncDecl parses a top-level function declaration, where the
// private marker (if any) appears directly after 'fn' per spec.md
// §4.2's function_decl production.
func (p *Parser) parseFreeFuncDecl() *ast.FuncDecl {
	pos := p.cur.Pos
	p.expect(token.FN, "Expect 'fn'.")
	private := false
	if p.cur.Kind == token.HASH {
		private = true
		p.advance()
	}
	override := false
	if p.cur.Kind == token.BANG {
		override = true
		p.advance()
	}
	decl := p.parseFuncTail(pos)
	decl.Private = private
	decl.Override = override
	return decl
}

func (p *Parser) parseFuncTail(pos token.Position) *ast.FuncDecl {
	nameTok := p.expect(token.IDENT, "Expect function name.")
	p.expect(token.LPAREN, "Expect '(' after function name.")

	var params []*ast.Param
	if p.cur.Kind != token.RPAREN {
		params = append(params, p.parseParam())
		for p.cur.Kind == token.COMMA {
			p.advance()
			params = append(params, p.parseParam())
		}
	}
	p.expect(token.RPAREN, "Expect ')' after parameters.")

	var retType *ast.Type
	if p.cur.Kind == token.COLON {
		p.advance()
		retType = p.parseType()
	}

	var body *ast.BlockStmt
	if p.cur.Kind == token.LBRACE {
		body = p.parseBlock()
	} else {
		p.consumeSemi()
	}

	return &ast.FuncDecl{Position: pos, Name: nameTok.Literal, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseParam() *ast.Param {
	pos := p.cur.Pos
	nameTok := p.expect(token.IDENT, "Expect parameter name.")
	p.expect(token.COLON, "Expect ':' after parameter name.")
	typ := p.parseType()
	return &ast.Param{Position: pos, Name: nameTok.Literal, Type: typ}
}

var primitiveTypeNames = map[token.Kind]string{
	token.KW_INT:    "int",
	token.KW_FLOAT:  "float",
	token.KW_BOOL:   "bool",
	token.KW_CHAR:   "char",
	token.KW_STRING: "string",
	token.KW_VOID:   "void",
}

func (p *Parser) parseType() *ast.Type {
	pos := p.cur.Pos
	var name string
	if primName, ok := primitiveTypeNames[p.cur.Kind]; ok {
		name = primName
		p.advance()
	} else if p.cur.Kind == token.IDENT {
		name = p.cur.Literal
		p.advance()
	} else {
		p.fail("Expect type name.")
	}

	isArray := false
	if p.cur.Kind == token.LBRACKET {
		p.advance()
		p.expect(token.RBRACKET, "Expect ']' after '[' in array type.")
		isArray = true
	}
	return &ast.Type{Position: pos, Name: name, IsArray: isArray}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.cur.Pos
	p.expect(token.LBRACE, "Expect '{'.")
	var stmts []ast.Statement
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return &ast.BlockStmt{Position: pos, Stmts: stmts}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LET:
		return p.parseVarDecl(true)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.cur.Pos
		p.advance()
		p.consumeSemi()
		return &ast.BreakStmt{Position: pos}
	case token.CONTINUE:
		pos := p.cur.Pos
		p.advance()
		p.consumeSemi()
		return &ast.ContinueStmt{Position: pos}
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssign(true)
	}
}

func (p *Parser) parseVarDecl(optionalSemi bool) *ast.VarDecl {
	pos := p.cur.Pos
	p.expect(token.LET, "Expect 'let'.")
	nameTok := p.expect(token.IDENT, "Expect variable name.")

	var typ *ast.Type
	if p.cur.Kind == token.COLON {
		p.advance()
		typ = p.parseType()
	}

	var init ast.Expression
	if p.cur.Kind == token.ASSIGN {
		p.advance()
		init = p.parseExpression()
	}

	if optionalSemi {
		p.consumeSemi()
	} else {
		p.expect(token.SEMI, "Expect ';' after for-loop initializer.")
	}
	return &ast.VarDecl{Position: pos, Name: nameTok.Literal, Type: typ, Init: init}
}

var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUSEQ: true, token.MINUSEQ: true,
	token.STAREQ: true, token.SLASHEQ: true, token.PERCENTEQ: true,
}

// parseExprOrAssign parses `expr_or_assign` from spec.md §4.2. When
// requireSemi is false (inside a for-loop update clause) no trailing
// semicolon is consumed or expected.
func (p *Parser) parseExprOrAssign(requireSemi bool) ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression()

	if assignOps[p.cur.Kind] {
		op := p.cur.Kind
		p.advance()
		value := p.parseExpression()
		if requireSemi {
			p.consumeSemi()
		}
		return &ast.AssignStmt{Position: pos, Op: op, Target: expr, Value: value}
	}

	if requireSemi {
		p.consumeSemi()
	}
	return &ast.ExprStmt{Position: pos, Expr: expr}
}

func (p *Parser) parseIf() *ast.IfStmt {
	pos := p.cur.Pos
	p.expect(token.IF, "Expect 'if'.")
	p.expect(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	then := p.parseBlock()

	var elseStmt ast.Statement
	if p.cur.Kind == token.ELSE {
		p.advance()
		if p.cur.Kind == token.IF {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseBlock()
		}
	}
	return &ast.IfStmt{Position: pos, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhile() *ast.WhileStmt {
	pos := p.cur.Pos
	p.expect(token.WHILE, "Expect 'while'.")
	p.expect(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	body := p.parseBlock()
	return &ast.WhileStmt{Position: pos, Cond: cond, Body: body}
}

func (p *Parser) parseFor() *ast.ForStmt {
	pos := p.cur.Pos
	p.expect(token.FOR, "Expect 'for'.")
	p.expect(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Statement
	switch p.cur.Kind {
	case token.SEMI:
		p.advance()
	case token.LET:
		init = p.parseVarDecl(false)
	default:
		init = p.parseExprOrAssign(false)
		p.expect(token.SEMI, "Expect ';' after for-loop initializer.")
	}

	var cond ast.Expression
	if p.cur.Kind != token.SEMI {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, "Expect ';' after for-loop condition.")

	var update ast.Statement
	if p.cur.Kind != token.RPAREN {
		update = p.parseExprOrAssign(false)
	}
	p.expect(token.RPAREN, "Expect ')' after for clauses.")

	body := p.parseBlock()
	return &ast.ForStmt{Position: pos, Init: init, Cond: cond, Update: update, Body: body}
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	pos := p.cur.Pos
	p.expect(token.RETURN, "Expect 'return'.")
	var value ast.Expression
	if p.cur.Kind != token.SEMI && p.cur.Kind != token.RBRACE {
		value = p.parseExpression()
	}
	p.consumeSemi()
	return &ast.ReturnStmt{Position: pos, Value: value}
}

// ---- Expressions, lowest to highest precedence ----

func (p *Parser) parseExpression() ast.Expression { return p.parseOr() }

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.cur.Kind == token.OROR {
		pos := p.cur.Pos
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Position: pos, Op: token.OROR, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.cur.Kind == token.ANDAND {
		pos := p.cur.Pos
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Position: pos, Op: token.ANDAND, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.cur.Kind == token.EQ || p.cur.Kind == token.NEQ {
		op := p.cur.Kind
		pos := p.cur.Pos
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.cur.Kind == token.LT || p.cur.Kind == token.LTE || p.cur.Kind == token.GT || p.cur.Kind == token.GTE {
		op := p.cur.Kind
		pos := p.cur.Pos
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur.Kind
		pos := p.cur.Pos
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH || p.cur.Kind == token.PERCENT {
		op := p.cur.Kind
		pos := p.cur.Pos
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

// parseUnary recurses into itself so that '- - x' and '!!x' parse,
// matching the right-associativity spec.md §4.2 calls for.
func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Kind == token.MINUS || p.cur.Kind == token.BANG {
		op := p.cur.Kind
		pos := p.cur.Pos
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Position: pos, Op: op, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur.Kind {
		case token.DOT:
			pos := p.cur.Pos
			p.advance()
			// `.#name` is accepted for symmetry with field/method
			// declarations, but privacy is enforced from the
			// declaration, not the access site, so the marker itself
			// carries no information once parsed.
			if p.cur.Kind == token.HASH {
				p.advance()
			}
			memberTok := p.expect(token.IDENT, "Expect member name after '.'.")
			expr = &ast.MemberExpr{Position: pos, Receiver: expr, Member: memberTok.Literal}
		case token.LPAREN:
			pos := p.cur.Pos
			p.advance()
			args := p.parseArgs()
			p.expect(token.RPAREN, "Expect ')' after arguments.")
			expr = &ast.CallExpr{Position: pos, Callee: expr, Args: args}
		case token.LBRACKET:
			pos := p.cur.Pos
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET, "Expect ']' after index.")
			expr = &ast.IndexExpr{Position: pos, Array: expr, Index: idx}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	if p.cur.Kind == token.RPAREN {
		return args
	}
	args = append(args, p.parseExpression())
	for p.cur.Kind == token.COMMA {
		p.advance()
		args = append(args, p.parseExpression())
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Kind {
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return &ast.IntLiteral{Position: tok.Pos, Value: v, Raw: tok.Literal}
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.FloatLiteral{Position: tok.Pos, Value: v, Raw: tok.Literal}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Position: tok.Pos, Raw: tok.Literal}
	case token.CHAR:
		p.advance()
		return &ast.CharLiteral{Position: tok.Pos, Raw: tok.Literal}
	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Position: tok.Pos, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Position: tok.Pos, Value: false}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
	case token.NEW:
		return p.parseNewExpr()
	case token.LPAREN:
		p.advance()
		e := p.parseExpression()
		p.expect(token.RPAREN, "Expect ')' after expression.")
		return e
	}
	p.fail("Expect expression.")
	return nil // unreachable: fail always panics
}

func (p *Parser) parseNewExpr() *ast.NewExpr {
	pos := p.cur.Pos
	p.expect(token.NEW, "Expect 'new'.")
	nameTok := p.expect(token.IDENT, "Expect class name after 'new'.")
	p.expect(token.LPAREN, "Expect '(' after class name.")
	args := p.parseArgs()
	p.expect(token.RPAREN, "Expect ')' after constructor arguments.")
	return &ast.NewExpr{Position: pos, ClassName: nameTok.Literal, Args: args}
}
