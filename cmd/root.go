package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/trafficwatch/app"
	"github.com/kilianp07/trafficwatch/config"
	coremon "github.com/kilianp07/trafficwatch/core/monitoring"
	"github.com/kilianp07/trafficwatch/infra/logger"
	inframon "github.com/kilianp07/trafficwatch/infra/monitoring"
)

// options are the flags shared by every command.
type options struct {
	cfgPath string
	strict  bool
	debug   bool
}

// NewRootCmd builds the trafficwatch command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "trafficwatch [logfile]",
		Short: "Learn an hourly traffic baseline and flag abnormal measures",
		Long: `trafficwatch reads a traffic log, averages the measures of every hour of the
day, then reads measures from stdin and tells whether each one is below, within
or above the expected traffic for its time of day.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, o, args)
		},
	}
	root.PersistentFlags().StringVarP(&o.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().BoolVar(&o.strict, "strict", false, "abort on the first malformed log line")
	root.Flags().BoolVar(&o.debug, "debug", false, "print the predicted traffic before each verdict")

	root.AddCommand(newBaselineCmd(o), newChartCmd(o), newSinksCmd())
	return root
}

// Execute runs the CLI. Failures are reported to the error monitor.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		coremon.CaptureException(err, map[string]string{"module": "cmd"})
		coremon.Flush(2 * time.Second)
	}
	return err
}

// setup loads the configuration, installs logging and monitoring, and
// builds the baseline from the log named in args.
func setup(cmd *cobra.Command, o *options, args []string) (*app.App, func(), error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.debug {
		cfg.Console.Debug = true
	}
	if o.strict {
		cfg.Input.Strict = true
	}
	closeLog, err := logger.Configure(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		_ = closeLog()
		return nil, nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	a, err := app.New(cfg)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		log := logger.New("cmd")
		if err := a.Close(); err != nil {
			log.Errorf("close sinks: %v", err)
		}
		if err := closeLog(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "close log: %v\n", err)
		}
	}

	path := cfg.Input.Path
	if len(args) > 0 {
		path = args[0]
	}
	var progress io.Writer
	if cfg.Input.Progress {
		progress = cmd.ErrOrStderr()
	}
	if _, err := a.Ingest(cmd.Context(), path, progress); err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

func runAnalyze(cmd *cobra.Command, o *options, args []string) error {
	defer coremon.Recover()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	a, cleanup, err := setup(cmd, o, args)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Serve(gctx) })
	g.Go(func() error {
		defer cancel()
		err := a.Session().Run(gctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
