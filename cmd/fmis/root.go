package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagPretty bool

var rootCmd = &cobra.Command{
	Use:   "fmis",
	Short: "LGU financial management service",
	Long:  "Obligation requests, disbursement vouchers, community tax certificates and the line-item calculator.",
	RunE:  runServe,
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", false, "Indent JSON output")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if flagPretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
