package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/sweeper/internal/config"
	"github.com/pankaj-dahiya-devops/sweeper/internal/credentials"
	"github.com/pankaj-dahiya-devops/sweeper/internal/sweep"
)

// errUnhealthy is returned by doctor when any diagnostic fails.
var errUnhealthy = fmt.Errorf("%w: environment is not ready to sweep", errReported)

// ProfileDiagnosis is the doctor result for one resolved profile.
type ProfileDiagnosis struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Credentials bool   `json:"credentials_ok"`
	AccountID   string `json:"account_id,omitempty"`
	Region      string `json:"region,omitempty"`
	Error       string `json:"error,omitempty"`
}

// DoctorResult is the structured output of sweeper doctor. It can be
// serialised to JSON via --format=json or rendered as text (default).
type DoctorResult struct {
	Config struct {
		Path    string   `json:"path,omitempty"`
		Loaded  bool     `json:"loaded"`
		Valid   bool     `json:"valid"`
		Regions []string `json:"regions,omitempty"`
		Checks  []string `json:"checks,omitempty"`
		Errors  []string `json:"errors,omitempty"`
	} `json:"config"`

	Credentials struct {
		Resolved bool               `json:"resolved"`
		Error    string             `json:"error,omitempty"`
		Profiles []ProfileDiagnosis `json:"profiles,omitempty"`
	} `json:"credentials"`

	OverallHealthy bool `json:"overall_healthy"`
}

func newDoctorCmd(d deps, f *sweepFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the config file and that every profile can authenticate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runDoctor(cmd.Context(), d, cmd.OutOrStdout(), format, f.config, f.profiles)
			if err != nil {
				return err
			}
			if !result.OverallHealthy {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", `Output format: "table" or "json"`)
	return cmd
}

// runDoctor collects every diagnostic, renders it to w and returns the
// result. The error covers rendering failures only; callers inspect
// OverallHealthy for the verdict.
func runDoctor(ctx context.Context, d deps, w io.Writer, format, configPath, profiles string) (DoctorResult, error) {
	result := collectDoctorResult(ctx, d, configPath, profiles)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return result, fmt.Errorf("encode doctor result: %w", err)
		}
	default:
		renderDoctorTable(result, w)
	}
	return result, nil
}

// discardLogger swallows the resolver's and loader's console lines; doctor
// reports through its own result instead.
type discardLogger struct{}

func (discardLogger) Info(string, ...any) {}
func (discardLogger) Warn(string, ...any) {}

func collectDoctorResult(ctx context.Context, d deps, configPath, profiles string) DoctorResult {
	var result DoctorResult

	// Config: load → validate. A missing explicit file falls back to the
	// default exactly as a sweep would.
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	result.Config.Path = path
	cfg, err := config.Load(path, discardLogger{})
	if err != nil {
		result.Config.Errors = []string{err.Error()}
		return result
	}
	result.Config.Loaded = true
	result.Config.Path = cfg.Path

	registry := sweep.DefaultRegistry()
	if errs := config.Validate(cfg, registry.Names()); len(errs) > 0 {
		for _, e := range errs {
			result.Config.Errors = append(result.Config.Errors, e.Error())
		}
	} else {
		result.Config.Valid = true
	}
	result.Config.Regions = cfg.Regions()
	for _, c := range registry.Enabled(cfg.ChecksToExclude) {
		result.Config.Checks = append(result.Config.Checks, string(c.ID))
	}

	// Credentials: resolve the chain, then load each profile through STS.
	resolver := credentials.Resolver{
		CLIProfiles:  credentials.SplitProfiles(profiles),
		FileProfiles: cfg.Profiles,
		ConfigPath:   cfg.Path,
		Getenv:       d.getenv,
	}
	resolved, err := resolver.Resolve(discardLogger{})
	if err != nil {
		result.Credentials.Error = err.Error()
	} else {
		result.Credentials.Resolved = true
	}

	allLoaded := true
	for _, p := range resolved {
		diag := ProfileDiagnosis{Name: p.DisplayName(), Source: p.Source.String()}
		pc, err := d.provider.LoadProfile(ctx, p.Name)
		if err != nil {
			diag.Error = err.Error()
			allLoaded = false
		} else {
			diag.Credentials = true
			diag.AccountID = pc.AccountID
			diag.Region = pc.Region
		}
		result.Credentials.Profiles = append(result.Credentials.Profiles, diag)
	}

	result.OverallHealthy = result.Config.Valid &&
		result.Credentials.Resolved &&
		allLoaded

	return result
}

// renderDoctorTable writes the human-readable diagnostic output to w.
func renderDoctorTable(result DoctorResult, w io.Writer) {
	fmt.Fprintln(w, "Environment Diagnostics")

	fmt.Fprintf(w, "\nConfig (%s):\n", result.Config.Path)
	switch {
	case !result.Config.Loaded:
		for _, e := range result.Config.Errors {
			doctorPrint(w, "Loaded", "FAIL", e)
		}
		doctorPrint(w, "Valid", "FAIL", "skipped")
	case !result.Config.Valid:
		doctorPrint(w, "Loaded", "OK", "")
		for _, e := range result.Config.Errors {
			doctorPrint(w, "Valid", "FAIL", e)
		}
	default:
		doctorPrint(w, "Loaded", "OK", "")
		doctorPrint(w, "Valid", "OK", "")
		doctorPrint(w, "Regions", fmt.Sprintf("%d", len(result.Config.Regions)), "")
		doctorPrint(w, "Checks", fmt.Sprintf("%d", len(result.Config.Checks)), "")
	}

	if !result.Config.Loaded {
		return
	}

	fmt.Fprintln(w, "\nAWS:")
	if !result.Credentials.Resolved {
		doctorPrint(w, "Credentials", "FAIL", result.Credentials.Error)
		return
	}
	for _, p := range result.Credentials.Profiles {
		label := fmt.Sprintf("Profile %s", p.Name)
		if p.Credentials {
			doctorPrint(w, label, "OK", "Account: "+p.AccountID)
		} else {
			doctorPrint(w, label, "FAIL", p.Error)
		}
	}
}

// doctorPrint writes a single diagnostic line to w. When detail is
// non-empty it is appended in parentheses.
func doctorPrint(w io.Writer, label, status, detail string) {
	if detail != "" {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, status, detail)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, status)
	}
}
