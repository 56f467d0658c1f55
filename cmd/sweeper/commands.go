package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/sweeper/internal/config"
	"github.com/pankaj-dahiya-devops/sweeper/internal/console"
	"github.com/pankaj-dahiya-devops/sweeper/internal/credentials"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/sweeper/internal/report"
	"github.com/pankaj-dahiya-devops/sweeper/internal/sweep"
	"github.com/pankaj-dahiya-devops/sweeper/internal/version"
)

// errReported is returned once an error has been printed to the console,
// so main only sets the exit status.
var errReported = errors.New("sweeper failed")

// deps are the collaborators a command needs. Tests swap the provider and
// factory for fakes.
type deps struct {
	provider common.AWSClientProvider
	factory  common.ClientFactory
	console  *console.Console
	getenv   func(string) string
	now      func() time.Time
}

func defaultDeps() deps {
	return deps{
		provider: common.NewDefaultAWSClientProvider(),
		factory:  common.NewClientSet,
		console:  console.NewTerminal(),
		getenv:   os.Getenv,
		now:      time.Now,
	}
}

// sweepFlags holds the root command's flag values.
type sweepFlags struct {
	config   string
	profiles string
	output   string
	noColor  bool
}

func newRootCmd(d deps) *cobra.Command {
	var f sweepFlags

	root := &cobra.Command{
		Use:   "sweeper",
		Short: "Report unused AWS resources across profiles and regions",
		Long: "Sweeper checks every configured AWS profile and region for resources that\n" +
			"are no longer in use: load balancers without instances, unattached volumes\n" +
			"and Elastic IPs, unused snapshots, running Beanstalk environments, OpsWorks\n" +
			"stacks and orphaned RDS snapshots. Nothing is modified.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.noColor {
				console.DisableStyling()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(d.console.Writer())
			return runSweep(cmd.Context(), d, f)
		},
	}

	root.PersistentFlags().StringVarP(&f.config, "config", "c", "", "Path to the config file (default ./config.yml)")
	root.PersistentFlags().StringVarP(&f.profiles, "profile", "p", "", "Comma-separated AWS profiles to sweep (overrides the config file)")
	root.PersistentFlags().BoolVar(&f.noColor, "no-color", false, "Disable coloured console output")
	root.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of the screen")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDoctorCmd(d, &f))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// loadConfig resolves, parses and validates the configuration named by
// flagPath. Every failure is printed before errReported is returned.
func loadConfig(con *console.Console, flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		con.Warn("Config option not provided. Using config.yml found in root")
		path = config.DefaultPath
	}

	cfg, err := config.Load(path, con)
	if errors.Is(err, config.ErrDefaultMissing) {
		con.Error("Default config.yml cannot be found. Exiting")
		return nil, errReported
	}
	if err != nil {
		con.Error("Failed to load config: %v", err)
		return nil, errReported
	}

	if errs := config.Validate(cfg, sweep.DefaultRegistry().Names()); len(errs) > 0 {
		for _, e := range errs {
			con.Error("%s: %v", cfg.Path, e)
		}
		return nil, errReported
	}
	return cfg, nil
}

// resolveProfiles runs the credential chain and prints the corrective hint
// for each failure.
func resolveProfiles(con *console.Console, d deps, cfg *config.Config, flagProfiles string) ([]credentials.Profile, error) {
	resolver := credentials.Resolver{
		CLIProfiles:  credentials.SplitProfiles(flagProfiles),
		FileProfiles: cfg.Profiles,
		ConfigPath:   cfg.Path,
		Getenv:       d.getenv,
	}

	profiles, err := resolver.Resolve(con)
	switch {
	case err == nil:
		return profiles, nil
	case errors.Is(err, credentials.ErrNoCredentials):
		con.Error("Environment Variables AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY not set. %v", err)
		con.Info("Either run 'aws configure', set your AWS Environment Variables")
		con.Info("Or set some profiles to run against in the config file or cmd line")
	default:
		con.Error("%v", err)
	}
	return nil, errReported
}

// runSweep is the root command body: configuration, credentials, then one
// runner pass written to the screen or a file.
func runSweep(ctx context.Context, d deps, f sweepFlags) error {
	con := d.console

	cfg, err := loadConfig(con, f.config)
	if err != nil {
		return err
	}
	profiles, err := resolveProfiles(con, d, cfg, f.profiles)
	if err != nil {
		return err
	}

	opts := sweep.Options{
		Checks:         sweep.DefaultRegistry().Enabled(cfg.ChecksToExclude),
		Regions:        cfg.Regions(),
		Policy:         cfg.Policy(),
		StrictProfiles: cfg.StrictProfiles,
		Now:            d.now,
	}

	var (
		sink   report.Sink
		status console.Status
	)
	if f.output == "" {
		con.Info("Sweeping to screen")
		sink = report.NewConsoleSink(con.Writer())
	} else {
		con.Info("Sweeping to %s", f.output)
		sink = report.NewFileSink(f.output)
		status = con.Status("Starting sweep")
		opts.Progress = status.Update
	}

	runErr := sweep.NewRunner(d.provider, d.factory, con, opts).Run(ctx, profiles, sink)
	if status != nil {
		status.Stop()
	}

	// A partial report is still written when the run aborts.
	if err := sink.Flush(); err != nil {
		con.Error("Failed to write report: %v", err)
		return errReported
	}
	if runErr != nil {
		con.Error("Sweep aborted: %v", runErr)
		return errReported
	}

	if f.output != "" {
		con.Success("Report written to %s", f.output)
	}
	return nil
}
