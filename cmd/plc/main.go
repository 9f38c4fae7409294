package main

import (
	"os"

	"github.com/jlallas384/plc/cmd/plc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
