package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"fq/internal/config"
	"fq/internal/follow"
	"fq/internal/logging"
	"fq/internal/waiter"
)

type rootOptions struct {
	all        bool
	quiet      bool
	status     bool
	verbose    bool
	wait       string
	configPath string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions
	ctx := newCommandContext(&opts.configPath)

	rootCmd := &cobra.Command{
		Use:   "fq [-aq] [JOBID...]",
		Short: "Follow the output of queued jobs until they finish",
		Long: "fq prints the output files of queued jobs as they grow and moves on once each job\n" +
			"has finished. Without JOBIDs it follows every running job in $NQDIR (or the\n" +
			"current directory), or the most recent job when none is running.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, ctx, opts, args)
		},
	}

	flags := rootCmd.Flags()
	// Job IDs may follow flags only; the first positional argument ends flag parsing.
	flags.SetInterspersed(false)
	flags.BoolVarP(&opts.all, "all", "a", false, "Follow every job, running or not")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the first line of each job")
	flags.BoolVarP(&opts.status, "status", "s", false, "List jobs and whether they are running instead of following them")
	flags.StringVar(&opts.wait, "wait", "", "Wait strategy: event or poll (default from config)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics at debug level")
	help := flags.VarPF(usageRequest{}, "help", "h", "Print usage and exit")
	help.NoOptDefVal = "true"
	help.Hidden = true

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if errors.Is(err, errUsageRequested) {
			return withExitCode(exitFailure, errors.New(usageLine))
		}
		return withExitCode(exitFailure, fmt.Errorf("%w\n%s", err, usageLine))
	})

	return rootCmd
}

var errUsageRequested = errors.New("usage requested")

// usageRequest stands in for cobra's help flag. Setting it fails parsing, so
// -h and --help end in the usage line with status 1 like any unknown flag.
type usageRequest struct{}

func (usageRequest) String() string { return "false" }

func (usageRequest) Set(string) error { return errUsageRequested }

func (usageRequest) Type() string { return "bool" }

func runFollow(cmd *cobra.Command, ctx *commandContext, opts rootOptions, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return withExitCode(exitConfig, err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return withExitCode(exitFailure, fmt.Errorf("%w\n%s", err, usageLine))
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return withExitCode(exitConfig, err)
	}

	env, err := ctx.jobEnvironment(cfg, logger)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = env.dir.Candidates(cfg.Follow.Marker)
		if err != nil {
			return withExitCode(exitResource, err)
		}
	}

	if opts.status {
		return renderStatus(cmd.OutOrStdout(), env.dir.Inspect(names, env.prober.IsLocked))
	}

	strategy, err := waiter.New(waiter.Options{
		Mode:            cfg.Follow.WaitMode,
		PollInterval:    cfg.PollInterval(),
		RecheckInterval: cfg.RecheckInterval(),
		Prober:          env.prober,
		Logger:          logger,
	})
	if err != nil {
		return withExitCode(exitConfig, err)
	}

	follower, err := follow.NewFollower(cmd.OutOrStdout(), follow.Options{
		Quiet:     opts.quiet,
		ChunkSize: cfg.Follow.ChunkSize,
		Prober:    env.prober,
		Strategy:  strategy,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	session := follow.NewSession(env.dir, follower, opts.all, logger)
	summary, err := session.Run(cmd.Context(), names)
	logger.Debug("run finished",
		slog.Int("candidates", len(names)),
		slog.Int("followed", len(summary.Followed)),
		slog.Int("skipped", summary.Skipped),
		slog.String("wait", strategy.Name()),
	)
	return err
}

func applyOverrides(cfg *config.Config, opts rootOptions) error {
	switch opts.wait {
	case "":
	case config.WaitModeEvent, config.WaitModePoll:
		cfg.Follow.WaitMode = opts.wait
	default:
		return fmt.Errorf("--wait: unsupported value %q (want %q or %q)", opts.wait, config.WaitModeEvent, config.WaitModePoll)
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}
