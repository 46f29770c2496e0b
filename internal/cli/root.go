// Package cli implements the taxengine command line: an HTTP server plus
// one-shot commands over the same engine.
package cli

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tax-engine/internal/config"
	"tax-engine/internal/engine"
	"tax-engine/internal/logger"
	"tax-engine/internal/model"
	"tax-engine/internal/schedule"
)

// app is built once per invocation, before any subcommand runs.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	schedule *schedule.Schedule
	engine   *engine.Engine
}

var errCalculationFailed = errors.New("calculation failed")

func NewRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "taxengine",
		Short:        "Compare Nigerian personal income tax under the prior and 2025 regimes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.ScheduleFile, "schedule", cfg.ScheduleFile, "YAML tax schedule overriding the enacted bands and reliefs")
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(a),
		newCompareCommand(a),
		newTaxCommand(a),
		newClassifyCommand(a),
		newScheduleCommand(a),
	)
	return root
}

func (a *app) init() error {
	log, err := logger.New(a.cfg.Stage, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log

	sched, err := schedule.Load(a.cfg.ScheduleFile)
	if err != nil {
		return err
	}
	a.schedule = sched
	a.engine = engine.New(sched.Regimes(), log)

	if a.cfg.ScheduleFile != "" {
		log.Info("loaded tax schedule", zap.String("path", a.cfg.ScheduleFile))
	}
	return nil
}

// printResult writes v as indented JSON and turns a FAILURE outcome into an
// error so the process exits non-zero.
func printResult(w io.Writer, meta model.CalculationMetadata, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	if meta.CalculationOutcome == model.OutcomeFailure {
		return errCalculationFailed
	}
	return nil
}
