package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wdm0006/modelprep/pkg/operator"
)

var (
	answersFile string
	outDir      string
	outName     string
	quiet       bool
)

// applyCmd replays an answers file without prompting
var applyCmd = &cobra.Command{
	Use:   "apply inputFile",
	Short: "Clean a dataset using answers from a YAML, TOML or JSON file",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if answersFile == "" {
			return errors.New("--answers is required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := operator.LoadAnswers(answersFile)
		if err != nil {
			return err
		}
		if outDir != "" {
			a.Export.Dir = outDir
		}
		if outName != "" {
			a.Export.Name = outName
		}
		var out io.Writer = os.Stdout
		if quiet {
			out = io.Discard
		}
		p, err := run(cmd.Context(), args[0], operator.NewScript(a, out), cfg.ExportOptions())
		if err != nil {
			return errors.Wrap(err, "apply")
		}
		report(p)
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&answersFile, "answers", "a", "", "answers file")
	applyCmd.Flags().StringVarP(&outDir, "out", "o", "", "export directory, overriding the answers file")
	applyCmd.Flags().StringVarP(&outName, "name", "n", "", "export file name without extension, overriding the answers file")
	applyCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print snapshots")
	rootCmd.AddCommand(applyCmd)
}
