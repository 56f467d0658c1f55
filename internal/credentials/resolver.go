// Package credentials decides which AWS profiles a run sweeps.
//
// Sources are tried in priority order and the first that yields profiles
// wins: profiles given on the command line, then profiles listed in the
// configuration file, then the AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY
// environment variables as a single ambient profile.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// Source records where a profile came from.
type Source int

const (
	SourceCLI Source = iota
	SourceConfig
	SourceEnvironment
)

func (s Source) String() string {
	switch s {
	case SourceCLI:
		return "command line"
	case SourceConfig:
		return "config file"
	case SourceEnvironment:
		return "environment"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Profile is one credential context to sweep. An empty Name selects the
// ambient environment credentials.
type Profile struct {
	Name   string
	Source Source
}

// DisplayName returns the name shown in report banners.
func (p Profile) DisplayName() string { return common.ProfileDisplayName(p.Name) }

var (
	// ErrNoCredentialsFile is returned when profiles are given on the
	// command line but no shared credentials file exists.
	ErrNoCredentialsFile = errors.New("AWS Credentials file not found. Please run 'aws configure' first")

	// ErrNoCredentials is returned when no source yields a profile.
	ErrNoCredentials = errors.New("unable to authenticate with AWS")
)

// Logger receives the resolver's diagnostics.
type Logger interface {
	Info(format string, a ...any)
	Warn(format string, a ...any)
}

// Resolver holds the inputs of the resolution chain. It is evaluated once
// per run.
type Resolver struct {
	// CLIProfiles are the names passed with -p, already split on commas.
	CLIProfiles []string

	// FileProfiles are the names listed in the configuration file.
	FileProfiles []string

	// ConfigPath names the configuration file in diagnostics.
	ConfigPath string

	// Getenv reads the environment. Nil means os.Getenv.
	Getenv func(string) string
}

// Resolve returns the profiles to sweep, in order.
func (r Resolver) Resolve(log Logger) ([]Profile, error) {
	if len(r.CLIProfiles) > 0 {
		return r.fromCLI(log)
	}

	if len(r.FileProfiles) > 0 {
		log.Info("Using profiles found in %s: %v", r.ConfigPath, r.FileProfiles)
		return toProfiles(r.FileProfiles, SourceConfig), nil
	}

	if r.getenv("AWS_ACCESS_KEY_ID") != "" && r.getenv("AWS_SECRET_ACCESS_KEY") != "" {
		log.Info("Using AWS environment variables for the current session")
		return []Profile{{Source: SourceEnvironment}}, nil
	}

	return nil, ErrNoCredentials
}

func (r Resolver) fromCLI(log Logger) ([]Profile, error) {
	if len(r.FileProfiles) > 0 {
		log.Warn("Overriding profiles found in %s", r.ConfigPath)
	}

	path, err := SharedCredentialsFile(r.getenv)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrNoCredentialsFile, path)
	}

	known, err := common.ProfilesInFile(path)
	if err != nil {
		return nil, err
	}
	for _, name := range r.CLIProfiles {
		if !slices.Contains(known, name) {
			log.Info("Profile %s is not in %s; it must come from the shared config file", name, path)
		}
	}

	return toProfiles(r.CLIProfiles, SourceCLI), nil
}

func (r Resolver) getenv(key string) string {
	if r.Getenv == nil {
		return os.Getenv(key)
	}
	return r.Getenv(key)
}

// SplitProfiles splits a -p value on commas, trimming blanks and dropping
// empty entries.
func SplitProfiles(arg string) []string {
	var names []string
	for _, n := range strings.Split(arg, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// SharedCredentialsFile returns $AWS_SHARED_CREDENTIALS_FILE when set,
// otherwise ~/.aws/credentials.
func SharedCredentialsFile(getenv func(string) string) (string, error) {
	if p := getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "credentials"), nil
}

func toProfiles(names []string, src Source) []Profile {
	profiles := make([]Profile, 0, len(names))
	for _, n := range names {
		profiles = append(profiles, Profile{Name: n, Source: src})
	}
	return profiles
}
