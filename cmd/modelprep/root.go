package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wdm0006/modelprep/dataio"
	"github.com/wdm0006/modelprep/pkg/config"
	"github.com/wdm0006/modelprep/pkg/logging"
	"github.com/wdm0006/modelprep/pkg/operator"
	"github.com/wdm0006/modelprep/pkg/pipeline"
	"github.com/wdm0006/modelprep/pkg/prep"
)

var version = "0.1.0-dev"

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "modelprep",
	Short:         "Turn a raw table into a model-ready one",
	Long:          "modelprep walks a dataset through outlier removal, type coercion, imputation, column pruning, renaming and dependent-variable placement, then exports the result.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default ./modelprep.yaml or $HOME/modelprep.yaml)")
	f.String("delimiter", "", "input delimiter; empty sniffs it")
	f.String("sheet", "", "xlsx sheet to read")
	f.StringSlice("na", nil, "cell values read as missing")
	f.Bool("strict", false, "reject rows with the wrong number of fields")
	f.String("format", "csv", "export format: csv, parquet or xlsx")
	f.Int("max-attempts", pipeline.DefaultMaxAttempts, "times a question is asked again after an error")
	f.Int("head", pipeline.DefaultHeadRows, "rows shown in previews")
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", "text", "text or json")

	for key, flag := range map[string]string{
		"input.delimiter":       "delimiter",
		"input.sheet":           "sheet",
		"input.na_values":       "na",
		"input.strict":          "strict",
		"export.format":         "format",
		"pipeline.max_attempts": "max-attempts",
		"display.head_rows":     "head",
		"log.level":             "log-level",
		"log.format":            "log-format",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	l, err := logging.New(os.Stderr, c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		l.Debug("config loaded", "path", used)
	}
	cfg, logger = c, l
	return nil
}

func load(path string) (*prep.Frame, error) {
	opt := cfg.LoadOptions()
	opt.Logger = logger
	f, err := dataio.Load(path, opt)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded", "path", path, "rows", f.Rows(), "cols", f.Cols())
	return f, nil
}

// run loads path and drives a full pipeline with op. A load failure ends
// the run before any question is asked.
func run(ctx context.Context, path string, op operator.Operator, exp dataio.ExportOptions) (*pipeline.Pipeline, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	p := pipeline.New(f, op,
		pipeline.WithLogger(logger),
		pipeline.WithMaxAttempts(cfg.Pipeline.MaxAttempts),
		pipeline.WithHeadRows(cfg.Display.HeadRows),
		pipeline.WithExport(exp),
	)
	if err := p.Run(ctx); err != nil {
		return p, errors.Wrap(err, "run")
	}
	return p, nil
}

func report(p *pipeline.Pipeline) {
	fmt.Fprintf(os.Stdout, "wrote %s (%d rows, %d columns)\n", p.ExportedPath(), p.Frame().Rows(), p.Frame().Cols())
}
