package codegen_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/lexer"
	"github.com/jlallas384/plc/internal/parser"
	"github.com/jlallas384/plc/internal/semantic"
)

func generate(t *testing.T, src string, opts codegen.Options) string {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 || len(p.LexerErrors()) > 0 {
		t.Fatalf("unexpected parse errors: %v %v", p.Errors(), p.LexerErrors())
	}
	a := semantic.NewAnalyzer()
	a.Analyze(program)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected semantic errors: %v", a.Errors())
	}
	return codegen.New(a, opts).Generate(program)
}

func TestGenerateHelloWorld(t *testing.T) {
	out := generate(t, `
fn main() {
    print("hello, world");
}
`, codegen.DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestGenerateInheritanceAndVirtualDispatch(t *testing.T) {
	out := generate(t, `
class Animal {
    fn speak(): string {
        return "...";
    }
}

class Dog : Animal {
    fn! speak(): string {
        return "woof";
    }
}

fn main() {
    let a: Animal = new Dog();
    print(a.speak());
}
`, codegen.DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestGenerateForLoopLowersToCFor(t *testing.T) {
	out := generate(t, `
fn main() {
    for (let i: int = 0; i < 10; i += 1) {
        if (i == 5) {
            continue;
        }
        print(i);
    }
}
`, codegen.DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestGenerateStringEqualityLowersToStrcmp(t *testing.T) {
	out := generate(t, `
fn main() {
    let a: string = "x";
    let b: string = "y";
    if (a == b) {
        print("same");
    }
}
`, codegen.DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestGenerateLazyVtableInit(t *testing.T) {
	out := generate(t, `
class Shape {
    fn area(): float {
        return 0.0;
    }
}

fn main() {
    let s: Shape = new Shape();
    print(s.area());
}
`, codegen.Options{VtableInit: codegen.VtableLazy, Indent: "    "})
	snaps.MatchSnapshot(t, out)
}

func TestGeneratePrivateFieldAccessWithinClass(t *testing.T) {
	out := generate(t, `
class Counter {
    #count: int;

    fn Counter(start: int) {
        this.count = start;
    }

    fn value(): int {
        return this.count;
    }
}

fn main() {
    let c: Counter = new Counter(5);
    print(c.value());
}
`, codegen.DefaultOptions())
	snaps.MatchSnapshot(t, out)
}
