package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeRefresh bool

// analyzeCmd runs one analysis cycle and prints the result as JSON.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis cycle and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		setupLogging(cfg)

		orch, cleanup, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		result, perr := orch.Run(context.Background(), analyzeRefresh)
		if perr != nil {
			return fmt.Errorf("%s", perr.Message)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "bypass the upstream fetch cache")
	rootCmd.AddCommand(analyzeCmd)
}
