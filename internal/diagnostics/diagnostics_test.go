package diagnostics_test

import (
	"testing"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/compiler"
	"github.com/jlallas384/plc/internal/diagnostics"
)

func TestEncodeSuccessfulCompilation(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    print("hi");
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	doc, err := diagnostics.Encode(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diagnostics.Success(doc) {
		t.Fatalf("expected success: true in %s", doc)
	}
	if diagnostics.ErrorCount(doc) != 0 {
		t.Fatalf("expected zero errors in %s", doc)
	}
}

func TestEncodeFailedCompilationCarriesMessages(t *testing.T) {
	res := compiler.Compile(`
fn main(): int {
    let x: int = "oops";
    return 0;
}
`, compiler.Options{Gen: codegen.DefaultOptions()})

	doc, err := diagnostics.Encode(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diagnostics.Success(doc) {
		t.Fatalf("expected success: false in %s", doc)
	}
	if diagnostics.ErrorCount(doc) != 1 {
		t.Fatalf("expected one error in %s", doc)
	}
	if diagnostics.FirstErrorMessage(doc) == "" {
		t.Fatalf("expected a non-empty error message in %s", doc)
	}
}
