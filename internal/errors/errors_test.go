package errors

import (
	"strings"
	"testing"
)

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	src := "fn main() {\n    let x: int = bogus;\n}\n"
	e := New(StageSemantic, "Undefined variable 'bogus'", 2, 17)

	out := e.Format(src, false)

	if !strings.Contains(out, "let x: int = bogus;") {
		t.Fatalf("expected the offending source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Undefined variable 'bogus'") {
		t.Fatalf("expected the message in output, got:\n%s", out)
	}
}

func TestFormatWithoutSourceSkipsExcerpt(t *testing.T) {
	e := New(StageLexer, "Unterminated string literal", 1, 0)
	out := e.Format("", false)

	if strings.Contains(out, "^") {
		t.Fatalf("expected no caret line without source, got:\n%s", out)
	}
	if !strings.Contains(out, "Unterminated string literal") {
		t.Fatalf("expected the message in output, got:\n%s", out)
	}
}

func TestFormatErrorsSingleOmitsBanner(t *testing.T) {
	errs := []*CompilationError{New(StageParser, "Expect ';'.", 3, 5)}
	out := FormatErrors(errs, "", false)

	if strings.Contains(out, "Compilation failed") {
		t.Fatalf("expected no banner for a single error, got:\n%s", out)
	}
}

func TestFormatErrorsMultipleAddsBanner(t *testing.T) {
	errs := []*CompilationError{
		New(StageParser, "Expect ';'.", 3, 5),
		New(StageSemantic, "No 'main' function defined", 0, 0),
	}
	out := FormatErrors(errs, "", false)

	if !strings.Contains(out, "Compilation failed with 2 error(s)") {
		t.Fatalf("expected a multi-error banner, got:\n%s", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("expected per-error numbering, got:\n%s", out)
	}
}
