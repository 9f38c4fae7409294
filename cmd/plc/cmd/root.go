package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "plc",
	Short: "A compiler for a small class-based language, targeting C",
	Long: `plc compiles programs in a small class-based imperative language to C.

The pipeline is lexer -> parser -> semantic analyzer -> code generator,
driven by a Compiler facade that aggregates diagnostics from every
stage and stops at the first stage that reports one.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print stage timing and diagnostic counts")
	rootCmd.PersistentFlags().String("config", "", "path to a .plc.yaml project file")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
