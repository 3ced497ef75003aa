package main

import (
	"os"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/colors"
	"github.com/spf13/cobra"
)

func init() {
	cobra.OnFinalize(func() {
		if err := client.Close(); err != nil {
			colors.Debug("closing store:", err.Error())
		}
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	colors.StructuredInfo("startup", "main", "started", nil, nil)
	if err := cmd.Execute(); err != nil {
		colors.StructuredError("startup", "main", "failed", err, nil)
		return 1
	}
	colors.StructuredInfo("startup", "main", "completed", nil, nil)
	return 0
}
