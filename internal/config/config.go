// Package config loads the sweeper configuration file.
//
// The file is YAML by default; a .toml or .json extension selects those
// formats instead. Every key is optional:
//
//	profiles:            [prod, staging]
//	regions_to_exclude:  [eu-west-1]
//	checks_to_exclude:   [elb]
//	on_error:            run      # run | profile | region
//	strict_profiles:     false
package config

import (
	"fmt"
	"slices"
)

// DefaultPath is the configuration file used when none is given, or when
// the given one does not exist.
const DefaultPath = "./config.yml"

// DefaultRegions is the fixed list of regions swept when none are excluded.
var DefaultRegions = []string{
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"ca-central-1",
	"ap-south-1",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-southeast-1",
	"ap-southeast-2",
	"eu-central-1",
	"eu-west-1",
	"eu-west-2",
	"sa-east-1",
}

// FailurePolicy selects how far an unexpected (non-authorization) provider
// error reaches.
type FailurePolicy string

const (
	// FailRun aborts the whole run.
	FailRun FailurePolicy = "run"
	// FailProfile reports the error and skips the rest of the profile.
	FailProfile FailurePolicy = "profile"
	// FailRegion reports the error and moves on to the next region.
	FailRegion FailurePolicy = "region"
)

// Config is the parsed configuration file.
type Config struct {
	// Profiles are the AWS profiles to sweep, in order. Overridden by -p.
	Profiles []string `yaml:"profiles" json:"profiles" toml:"profiles"`

	// RegionsToExclude are removed from DefaultRegions. Unknown names are
	// ignored.
	RegionsToExclude []string `yaml:"regions_to_exclude" json:"regions_to_exclude" toml:"regions_to_exclude"`

	// ChecksToExclude names checks that must not run.
	ChecksToExclude []string `yaml:"checks_to_exclude" json:"checks_to_exclude" toml:"checks_to_exclude"`

	// OnError is the failure policy for unexpected provider errors.
	// Empty means FailRun.
	OnError string `yaml:"on_error" json:"on_error" toml:"on_error"`

	// StrictProfiles aborts the run when a profile cannot be loaded instead
	// of reporting it and moving on.
	StrictProfiles bool `yaml:"strict_profiles" json:"strict_profiles" toml:"strict_profiles"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-" json:"-" toml:"-"`
}

// Regions returns DefaultRegions minus RegionsToExclude, in default order.
func (c *Config) Regions() []string {
	regions := make([]string, 0, len(DefaultRegions))
	for _, r := range DefaultRegions {
		if !slices.Contains(c.RegionsToExclude, r) {
			regions = append(regions, r)
		}
	}
	return regions
}

// Policy returns the configured failure policy, defaulting to FailRun.
func (c *Config) Policy() FailurePolicy {
	if c.OnError == "" {
		return FailRun
	}
	return FailurePolicy(c.OnError)
}

// Validate checks cfg for semantic correctness and returns every error
// found. knownChecks lists the check names accepted in checks_to_exclude.
// An empty slice means the config is valid.
func Validate(cfg *Config, knownChecks []string) []error {
	if cfg == nil {
		return []error{fmt.Errorf("config is nil")}
	}

	var errs []error
	for _, name := range cfg.ChecksToExclude {
		if !slices.Contains(knownChecks, name) {
			errs = append(errs, fmt.Errorf("checks_to_exclude: unknown check %q; valid values: %v", name, knownChecks))
		}
	}

	switch cfg.Policy() {
	case FailRun, FailProfile, FailRegion:
	default:
		errs = append(errs, fmt.Errorf("on_error: unknown value %q; valid values: run, profile, region", cfg.OnError))
	}

	for i, p := range cfg.Profiles {
		if p == "" {
			errs = append(errs, fmt.Errorf("profiles[%d]: empty profile name", i))
		}
	}
	return errs
}
