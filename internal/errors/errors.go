// Package errors renders CompilationError diagnostics with source
// context: a line/column header, a caret-pointed source excerpt, and
// the diagnostic message, in the teacher's internal/errors formatting
// style, adapted onto spec.md §6's four-field CompilationError shape.
package errors

import (
	"fmt"
	"strings"
)

// Stage identifies which pipeline stage produced a diagnostic, per
// spec.md §6: exactly one of lexer, parser, semantic, codegen.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageSemantic Stage = "semantic"
	StageCodegen  Stage = "codegen"
)

// CompilationError is a single diagnostic. Line is 1-based and Column
// is 0-based, except the semantic analyzer's "no main function"
// diagnostic, which carries (0, 0).
type CompilationError struct {
	Stage   Stage
	Message string
	Line    int
	Column  int
}

// New constructs a CompilationError.
func New(stage Stage, message string, line, column int) *CompilationError {
	return &CompilationError{Stage: stage, Message: message, Line: line, Column: column}
}

// Error implements the error interface with an uncolored, single-line-
// excerpt-free rendering, for use in contexts without the source text.
func (e *CompilationError) Error() string {
	return fmt.Sprintf("[%s] %s at %d:%d", e.Stage, e.Message, e.Line, e.Column)
}

// Format renders e against source, with a line-numbered excerpt and a
// caret under the offending column. If color is true, ANSI codes
// highlight the caret and message.
func (e *CompilationError) Format(source string, color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] error at %d:%d\n", e.Stage, e.Line, e.Column)

	if line := sourceLine(source, e.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteByte('\n')

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Column))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// sourceLine extracts the 1-indexed lineNum'th line of source, or ""
// if out of range.
func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders every error in errs against source, banner-
// separated when there is more than one, matching the teacher's
// "[Error N of M]" convention.
func FormatErrors(errs []*CompilationError, source string, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(source, color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(source, color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
