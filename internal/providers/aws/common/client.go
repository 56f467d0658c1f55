package common

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// EnvironmentProfile is the display name used for the ambient credential
// chain, selected by passing an empty profile name to LoadProfile.
const EnvironmentProfile = "environment"

// ProfileConfig is a resolved AWS profile with its SDK configuration. It is
// the unit passed from the loader into the sweep runner.
type ProfileConfig struct {
	// ProfileName is the name from the shared credentials file, or
	// EnvironmentProfile for the ambient credential chain.
	ProfileName string

	// AccountID is the resolved AWS account ID for this profile (via STS).
	AccountID string

	// Region is the home region for this profile configuration.
	Region string

	// Config is the fully loaded AWS SDK v2 configuration.
	Config aws.Config
}

// AWSClientProvider loads AWS configurations. It is the sole entry point for
// AWS credential management across the provider layer.
//
// Implementations must use the AWS SDK v2 only. Never call the aws CLI.
type AWSClientProvider interface {
	// LoadProfile returns a ProfileConfig for the named profile.
	// Pass an empty string to use the ambient environment credentials.
	LoadProfile(ctx context.Context, profile string) (*ProfileConfig, error)

	// ConfigForRegion clones cfg with the target region set.
	// Use this to obtain a region-scoped aws.Config for SDK client construction.
	ConfigForRegion(cfg *ProfileConfig, region string) aws.Config
}
