package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wdm0006/modelprep/pkg/operator"
)

// interactiveCmd asks every question on the terminal
var interactiveCmd = &cobra.Command{
	Use:   "interactive inputFile",
	Short: "Clean a dataset by answering questions at the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := operator.NewTerminal(os.Stdin, os.Stdout)
		p, err := run(cmd.Context(), args[0], op, cfg.ExportOptions())
		if err != nil {
			return errors.Wrap(err, "interactive")
		}
		report(p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
