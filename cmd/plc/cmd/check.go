package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/compiler"
	"github.com/jlallas384/plc/internal/diagnostics"
	"github.com/jlallas384/plc/internal/errors"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report lexer, parser, and semantic diagnostics without emitting C",
	Long: `check runs a source file through the pipeline and reports its
diagnostics (lexer, parser, semantic analyzer) without emitting any
generated C, for fast feedback while editing.

Examples:
  plc check program.plc
  plc check program.plc --json`,
	Args: cobra.ExactArgs(1),
	RunE: checkScript,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit the CompilationResult as JSON")
}

func checkScript(cmd *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	// check never needs generated C; DefaultOptions is irrelevant here
	// since codegen only runs on full success and its output is discarded,
	// so neither the report nor the --json document carries it.
	res := compiler.Compile(source, compiler.Options{Gen: codegen.DefaultOptions()})
	res.CCode = ""

	if checkJSON {
		doc, err := diagnostics.Encode(res)
		if err != nil {
			return fmt.Errorf("failed to encode result as JSON: %w", err)
		}
		fmt.Println(doc)
		if !res.Success {
			return fmt.Errorf("checked %s: %d error(s)", filename, len(res.Errors))
		}
		return nil
	}

	if !res.Success {
		fmt.Fprint(os.Stderr, errors.FormatErrors(res.Errors, source, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("checked %s: %d error(s)", filename, len(res.Errors))
	}

	fmt.Printf("%s: ok\n", filename)
	return nil
}
