package compiler_test

import (
	"strings"
	"testing"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/compiler"
)

func TestCompileHelloWorldSucceeds(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    print("Hello, World!");
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if !strings.Contains(res.CCode, "Hello, World!") {
		t.Fatalf("expected generated C to contain the greeting, got:\n%s", res.CCode)
	}
}

func TestCompileMissingMainFails(t *testing.T) {
	res := compiler.Compile(`
fn foo(): int {
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for a program with no main function")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0].Message, "main") {
		t.Fatalf("expected one diagnostic mentioning 'main', got: %v", res.Errors)
	}
}

func TestCompileTypeMismatchFails(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    let x: int = "hello";
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for a type mismatch")
	}
	if !strings.Contains(res.Errors[0].Message, "Type mismatch") {
		t.Fatalf("expected a 'Type mismatch' diagnostic, got: %v", res.Errors)
	}
}

func TestCompileUndefinedIdentifierFails(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    let x: int = undefinedVar;
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for an undefined identifier")
	}
	if !strings.Contains(res.Errors[0].Message, "Undefined variable") {
		t.Fatalf("expected an 'Undefined variable' diagnostic, got: %v", res.Errors)
	}
}

func TestCompileInheritanceAndVirtualDispatchSucceeds(t *testing.T) {
	res := compiler.Compile(`
class A {
    fn greet(): int {
        print("A");
        return 0;
    }
}

class B : A {
    fn! greet(): int {
        print("B");
        return 0;
    }
}

fn main(): int {
    let a: A = new B();
    a.greet();
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if !strings.Contains(res.CCode, "__vtable") {
		t.Fatalf("expected the generated C to dispatch through a vtable, got:\n%s", res.CCode)
	}
}

func TestCompileBreakOutsideLoopFails(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    break;
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for a break outside any loop")
	}
	if !strings.Contains(res.Errors[0].Message, "'break' outside of loop") {
		t.Fatalf("expected a \"'break' outside of loop\" diagnostic, got: %v", res.Errors)
	}
}

func TestCompileStopsAtFirstLexerError(t *testing.T) {
	res := compiler.Compile("fn main(): int { let x: int = `; return 0; }", compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for an illegal character")
	}
	if res.CCode != "" {
		t.Fatalf("expected codegen to never run past a lexer error")
	}
}

func TestCompileStopsAtParserErrorBeforeSemanticAnalysis(t *testing.T) {
	res := compiler.Compile("fn main(): int { let x: int = ; return 0; }", compiler.Options{Gen: codegen.DefaultOptions()})

	if res.Success {
		t.Fatalf("expected failure for a malformed declaration")
	}
	for _, e := range res.Errors {
		if string(e.Stage) == "semantic" {
			t.Fatalf("expected semantic analysis to be skipped once the parser reported an error")
		}
	}
}

type fakeRunner struct {
	output string
	err    error
}

func (r fakeRunner) Run(cSource string) (string, error) { return r.output, r.err }

func TestCompileRunPopulatesOutputViaRunner(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    print("Hello, World!");
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions(), Run: true, Runner: fakeRunner{output: "Hello, World!\n"}})

	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if res.Output != "Hello, World!\n" {
		t.Fatalf("expected the runner's output to be forwarded, got %q", res.Output)
	}
}
