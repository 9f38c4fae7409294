// Package compiler wires the lexer, parser, semantic analyzer, and code
// generator into a single entry point, short-circuiting on the first
// stage that reports a diagnostic, in the stage-sequencing style of
// the teacher's cobra-driven CLI pipeline and ported from
// original_source/compiler/compiler.py's Compiler.compile.
package compiler

import (
	"github.com/jlallas384/plc/internal/ast"
	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/errors"
	"github.com/jlallas384/plc/internal/lexer"
	"github.com/jlallas384/plc/internal/parser"
	"github.com/jlallas384/plc/internal/semantic"
	"github.com/jlallas384/plc/internal/token"
)

// Runner invokes a host C compiler on generated C text and reports the
// program's output. Compiling the produced C and running the binary is
// outside this core's scope (spec.md §1's Non-goals); Compile accepts a
// Runner so an orchestrating caller can supply one without the core
// depending on os/exec. A nil Runner is the default: Run requests on a
// Result never populate Output.
type Runner interface {
	Run(cSource string) (output string, err error)
}

// Result is the outcome of a single Compile call.
type Result struct {
	Success bool
	Errors  []*errors.CompilationError
	CCode   string
	Output  string
	Tokens  []token.Token
	Program *ast.Program
}

// Options configures a single Compile call.
type Options struct {
	// Run, when true, asks a supplied Runner to compile and execute the
	// generated C text after a successful codegen stage.
	Run    bool
	Runner Runner
	Gen    codegen.Options
}

// Compile runs source through lex, parse, semantic analysis, and code
// generation, stopping at the first stage that produces any diagnostic.
func Compile(source string, opts Options) Result {
	// Stage 1: lexing. Run to completion independently of the parser so
	// every INVALID token is captured even if parsing never reaches it.
	lx := lexer.New(source)
	var tokens []token.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if lexErrs := lx.Errors(); len(lexErrs) > 0 {
		return Result{Success: false, Errors: lexErrorsToCompilationErrors(lexErrs), Tokens: tokens}
	}

	// Stage 2: parsing, against a fresh lexer so the parser's own token
	// cursor starts at the beginning of source.
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return Result{Success: false, Errors: parseErrorsToCompilationErrors(parseErrs), Tokens: tokens, Program: program}
	}

	// Stage 3: semantic analysis.
	analyzer := semantic.NewAnalyzer()
	analyzer.Analyze(program)
	if semErrs := analyzer.Errors(); len(semErrs) > 0 {
		return Result{Success: false, Errors: semanticErrorsToCompilationErrors(semErrs), Tokens: tokens, Program: program}
	}

	// Stage 4: code generation. The core generator is total: every
	// well-formed AST translates (spec.md §7), so there is no codegen
	// diagnostic path here.
	gen := codegen.New(analyzer, opts.Gen)
	cCode := gen.Generate(program)

	if !opts.Run {
		return Result{Success: true, Tokens: tokens, Program: program, CCode: cCode}
	}

	if opts.Runner == nil {
		return Result{Success: true, Tokens: tokens, Program: program, CCode: cCode}
	}
	output, err := opts.Runner.Run(cCode)
	if err != nil {
		return Result{
			Success: false,
			Errors:  []*errors.CompilationError{errors.New(errors.StageCodegen, err.Error(), 0, 0)},
			Tokens:  tokens, Program: program, CCode: cCode,
		}
	}
	return Result{Success: true, Tokens: tokens, Program: program, CCode: cCode, Output: output}
}

func lexErrorsToCompilationErrors(errs []lexer.Error) []*errors.CompilationError {
	out := make([]*errors.CompilationError, 0, len(errs))
	for _, e := range errs {
		out = append(out, errors.New(errors.StageLexer, e.Message, e.Pos.Line, e.Pos.Column))
	}
	return out
}

func parseErrorsToCompilationErrors(errs []*parser.ParseError) []*errors.CompilationError {
	out := make([]*errors.CompilationError, 0, len(errs))
	for _, e := range errs {
		out = append(out, errors.New(errors.StageParser, e.Message, e.Pos.Line, e.Pos.Column))
	}
	return out
}

func semanticErrorsToCompilationErrors(diags []*semantic.Diagnostic) []*errors.CompilationError {
	out := make([]*errors.CompilationError, 0, len(diags))
	for _, d := range diags {
		out = append(out, errors.New(errors.StageSemantic, d.Message, d.Pos.Line, d.Pos.Column))
	}
	return out
}
