package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wdm0006/modelprep/pkg/plot"
	"github.com/wdm0006/modelprep/pkg/profile"
	"github.com/wdm0006/modelprep/pkg/readiness"
)

var (
	plotKind string
	topK     int
)

// inspectCmd prints what the first stage would show, without changing anything
var inspectCmd = &cobra.Command{
	Use:   "inspect inputFile",
	Short: "Print a preview, column types, summary statistics and a profile",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if plotKind == "" {
			return nil
		}
		_, err := plot.ParseKind(plotKind)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := load(args[0])
		if err != nil {
			return err
		}
		w := os.Stdout
		profile.WriteHead(w, f, cfg.Display.HeadRows)
		profile.WriteOverview(w, f)
		profile.WriteDescribe(w, f)

		c := profile.NewCollector(f.Schema(), topK)
		c.ConsumeFrame(f)
		fmt.Fprint(w, c.ReportText())

		if plotKind != "" {
			if err := plot.Render(w, f, plot.Kind(plotKind)); err != nil {
				return err
			}
		}
		fmt.Fprintln(w, readiness.Check(f, "").String())
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&plotKind, "plot", "p", "", `"Correlation matrix" or "Histograms"`)
	inspectCmd.Flags().IntVar(&topK, "top", 5, "most frequent values listed per text column")
	rootCmd.AddCommand(inspectCmd)
}
