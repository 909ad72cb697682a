package main

import (
	"fmt"

	"github.com/smallbiznis/fmis/internal/amountwords"
	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words <amount>",
	Short: "Spell out a peso amount",
	Args:  cobra.ExactArgs(1),
	RunE:  runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	words := amountwords.Convert(args[0])
	if words == "" {
		return fmt.Errorf("not an amount: %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), words)
	return nil
}
