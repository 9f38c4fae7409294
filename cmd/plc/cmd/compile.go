package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlallas384/plc/internal/codegen"
	"github.com/jlallas384/plc/internal/compiler"
	"github.com/jlallas384/plc/internal/config"
	"github.com/jlallas384/plc/internal/diagnostics"
	"github.com/jlallas384/plc/internal/errors"
)

var (
	outputFile     string
	vtableInitFlag string
	emitJSON       bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to C",
	Long: `Compile a program through lexing, parsing, semantic analysis, and
code generation, and write the resulting C translation unit.

Examples:
  # Compile to stdout
  plc compile program.plc

  # Compile to a named file
  plc compile program.plc -o program.c

  # Force lazy vtable initialization
  plc compile program.plc --vtable-init lazy

  # Emit the CompilationResult as JSON instead of C text
  plc compile program.plc --json`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&vtableInitFlag, "vtable-init", "", "override the vtable-initialization strategy: bootstrap or lazy")
	compileCmd.Flags().BoolVar(&emitJSON, "json", false, "emit the CompilationResult as JSON instead of C text")
}

func compileScript(cmd *cobra.Command, args []string) error {
	filename := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	genOpts, err := resolveGenOptions(configPath, vtableInitFlag)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	start := time.Now()
	res := compiler.Compile(source, compiler.Options{Gen: genOpts})
	elapsed := time.Since(start)

	if verbose {
		fmt.Fprintf(os.Stderr, "Pipeline finished in %s (%d diagnostic(s))\n", elapsed, len(res.Errors))
	}

	if emitJSON {
		doc, err := diagnostics.Encode(res)
		if err != nil {
			return fmt.Errorf("failed to encode result as JSON: %w", err)
		}
		return writeOutput(outputFile, doc)
	}

	if !res.Success {
		fmt.Fprint(os.Stderr, errors.FormatErrors(res.Errors, source, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Errors))
	}

	return writeOutput(outputFile, res.CCode)
}

func resolveGenOptions(configPath, vtableInitFlag string) (codegen.Options, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return codegen.Options{}, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
		cfg = loaded
	}
	if vtableInitFlag != "" {
		cfg.VtableInit = vtableInitFlag
	}
	return cfg.GenOptions()
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
