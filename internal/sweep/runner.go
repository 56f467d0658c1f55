package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pankaj-dahiya-devops/sweeper/internal/config"
	"github.com/pankaj-dahiya-devops/sweeper/internal/credentials"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/sweeper/internal/report"
)

// Logger receives operator diagnostics that do not belong in the report.
type Logger interface {
	Warn(format string, a ...any)
}

// Options configures a Runner.
type Options struct {
	// Checks run in slice order. Use Registry.Enabled to build it.
	Checks []Check

	// Regions are swept in slice order for every check.
	Regions []string

	// Policy scopes unexpected provider errors. Empty means config.FailRun.
	Policy config.FailurePolicy

	// StrictProfiles aborts the run when a profile cannot be loaded.
	StrictProfiles bool

	// Progress, when set, is called before each region sweep with a short
	// description of what is being queried.
	Progress func(text string)

	// Now stamps the report header. Nil means time.Now.
	Now func() time.Time
}

// Runner walks profile → check → region and writes every result to a sink.
// It is single-threaded: every SDK call is made sequentially so report
// lines come out in a deterministic order.
type Runner struct {
	provider common.AWSClientProvider
	factory  common.ClientFactory
	log      Logger
	opts     Options
}

// NewRunner returns a Runner that loads profiles through provider and builds
// region clients with factory.
func NewRunner(provider common.AWSClientProvider, factory common.ClientFactory, log Logger, opts Options) *Runner {
	if opts.Policy == "" {
		opts.Policy = config.FailRun
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{provider: provider, factory: factory, log: log, opts: opts}
}

// Run sweeps every profile in order and frames the report with its header
// and footer. It does not flush out. A non-nil error means the run was
// aborted; the footer is then omitted.
func (r *Runner) Run(ctx context.Context, profiles []credentials.Profile, out report.Sink) error {
	report.Begin(out, r.opts.Now())

	for _, p := range profiles {
		err := r.sweepProfile(ctx, p, out)
		if errors.Is(err, ErrProfileAborted) {
			r.log.Warn("%v", err)
			continue
		}
		if err != nil {
			return err
		}
	}

	report.End(out)
	return nil
}

// sweepProfile loads p and runs every check against every region.
func (r *Runner) sweepProfile(ctx context.Context, p credentials.Profile, out report.Sink) error {
	name := p.DisplayName()
	out.Line(report.Separator)
	out.Line("\nSweeping AWS profile (%s)", name)
	out.Line(report.Separator)

	pc, err := r.provider.LoadProfile(ctx, p.Name)
	if err != nil {
		out.Line("AWS profile (%s) could not be found", name)
		r.log.Warn("%v", err)
		if r.opts.StrictProfiles {
			return fmt.Errorf("%w: %s: %w", ErrProfileUnavailable, name, err)
		}
		return nil
	}
	out.Line("Account ID: %s", pc.AccountID)

	clients := common.NewRegionalClients(r.provider, pc, r.factory)
	for _, c := range r.opts.Checks {
		for _, region := range r.opts.Regions {
			if err := r.sweepRegion(ctx, name, c, clients.For(region), region, out); err != nil {
				return err
			}
		}
		if c.Summary != "" {
			out.Line("%s", c.Summary)
		}
	}
	return nil
}

// sweepRegion runs one check in one region. It is the single place where
// provider failures are classified: authorization errors are reported and
// the next region is tried; other errors follow the failure policy. Every
// region that is moved past still gets its completion line.
func (r *Runner) sweepRegion(
	ctx context.Context,
	profile string,
	c Check,
	clients *common.ClientSet,
	region string,
	out report.Sink,
) error {
	if r.opts.Progress != nil {
		r.opts.Progress(fmt.Sprintf("Sweeping %s: %s in %s", profile, c.ID, region))
	}

	c.heading(out, region)
	err := c.Sweep(ctx, clients, region, out)
	if err == nil {
		out.Line(c.Done, region)
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("sweep %s in %s: %w", c.ID, region, ctxErr)
	}

	out.Line("%v", err)
	if IsAccessDenied(err) {
		out.Line(accessHint)
		out.Line(c.Done, region)
		return nil
	}

	switch r.opts.Policy {
	case config.FailRegion:
		out.Line(c.Done, region)
		return nil
	case config.FailProfile:
		out.Line("Skipping the rest of AWS profile (%s)\n", profile)
		return fmt.Errorf("%w: %s: %s in %s: %w", ErrProfileAborted, profile, c.ID, region, err)
	default:
		return fmt.Errorf("sweep %s in %s for profile %s: %w", c.ID, region, profile, err)
	}
}
