package common

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	eb "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/opsworks"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ---------------------------------------------------------------------------
// Per-service client interfaces
//
// Each interface covers only the operations used by this project. Using narrow
// interfaces instead of the full SDK clients makes mocking in unit tests
// trivial: create a struct that satisfies the interface and return canned data.
// ---------------------------------------------------------------------------

// STSClient is the subset of STS operations used by the loader.
type STSClient interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// EC2Client covers the EC2 describe calls behind the volume, snapshot and
// Elastic IP sweeps.
type EC2Client interface {
	DescribeVolumes(
		ctx context.Context,
		params *ec2.DescribeVolumesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeVolumesOutput, error)

	DescribeSnapshots(
		ctx context.Context,
		params *ec2.DescribeSnapshotsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeSnapshotsOutput, error)

	DescribeImages(
		ctx context.Context,
		params *ec2.DescribeImagesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeImagesOutput, error)

	DescribeAddresses(
		ctx context.Context,
		params *ec2.DescribeAddressesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeAddressesOutput, error)
}

// ELBClient covers the classic Elastic Load Balancing operations.
type ELBClient interface {
	DescribeLoadBalancers(
		ctx context.Context,
		params *elb.DescribeLoadBalancersInput,
		optFns ...func(*elb.Options),
	) (*elb.DescribeLoadBalancersOutput, error)
}

// ELBv2Client covers the Elastic Load Balancing v2 operations needed to
// decide whether a load balancer has any registered targets.
type ELBv2Client interface {
	DescribeLoadBalancers(
		ctx context.Context,
		params *elbv2.DescribeLoadBalancersInput,
		optFns ...func(*elbv2.Options),
	) (*elbv2.DescribeLoadBalancersOutput, error)

	DescribeTargetGroups(
		ctx context.Context,
		params *elbv2.DescribeTargetGroupsInput,
		optFns ...func(*elbv2.Options),
	) (*elbv2.DescribeTargetGroupsOutput, error)

	DescribeTargetHealth(
		ctx context.Context,
		params *elbv2.DescribeTargetHealthInput,
		optFns ...func(*elbv2.Options),
	) (*elbv2.DescribeTargetHealthOutput, error)
}

// BeanstalkClient covers the Elastic Beanstalk operations.
type BeanstalkClient interface {
	DescribeEnvironments(
		ctx context.Context,
		params *eb.DescribeEnvironmentsInput,
		optFns ...func(*eb.Options),
	) (*eb.DescribeEnvironmentsOutput, error)
}

// OpsWorksClient covers the OpsWorks stack inventory operations.
type OpsWorksClient interface {
	DescribeStacks(
		ctx context.Context,
		params *opsworks.DescribeStacksInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeStacksOutput, error)

	DescribeEcsClusters(
		ctx context.Context,
		params *opsworks.DescribeEcsClustersInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeEcsClustersOutput, error)

	DescribeElasticIps(
		ctx context.Context,
		params *opsworks.DescribeElasticIpsInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeElasticIpsOutput, error)

	DescribeInstances(
		ctx context.Context,
		params *opsworks.DescribeInstancesInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeInstancesOutput, error)

	DescribeElasticLoadBalancers(
		ctx context.Context,
		params *opsworks.DescribeElasticLoadBalancersInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeElasticLoadBalancersOutput, error)

	DescribeRdsDbInstances(
		ctx context.Context,
		params *opsworks.DescribeRdsDbInstancesInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeRdsDbInstancesOutput, error)

	DescribeVolumes(
		ctx context.Context,
		params *opsworks.DescribeVolumesInput,
		optFns ...func(*opsworks.Options),
	) (*opsworks.DescribeVolumesOutput, error)
}

// RDSClient covers the RDS operations used by the snapshot sweep.
type RDSClient interface {
	DescribeDBSnapshots(
		ctx context.Context,
		params *rds.DescribeDBSnapshotsInput,
		optFns ...func(*rds.Options),
	) (*rds.DescribeDBSnapshotsOutput, error)

	DescribeDBInstances(
		ctx context.Context,
		params *rds.DescribeDBInstancesInput,
		optFns ...func(*rds.Options),
	) (*rds.DescribeDBInstancesOutput, error)
}

// ---------------------------------------------------------------------------
// ClientSet and ClientFactory
// ---------------------------------------------------------------------------

// ClientSet holds fully initialised AWS service clients for a given profile
// and region. All fields are interfaces so they can be replaced with mocks in
// tests without importing the AWS SDK in test files.
type ClientSet struct {
	STS       STSClient
	EC2       EC2Client
	ELB       ELBClient
	ELBv2     ELBv2Client
	Beanstalk BeanstalkClient
	OpsWorks  OpsWorksClient
	RDS       RDSClient
}

// ClientFactory creates a ClientSet from an aws.Config.
// Swap this in tests to inject mock clients.
type ClientFactory func(cfg aws.Config) *ClientSet

// NewClientSet is the production ClientFactory. It constructs real AWS SDK
// clients from cfg. SDK clients are lazy; nothing is sent until a describe
// call is made.
func NewClientSet(cfg aws.Config) *ClientSet {
	return &ClientSet{
		STS:       sts.NewFromConfig(cfg),
		EC2:       ec2.NewFromConfig(cfg),
		ELB:       elb.NewFromConfig(cfg),
		ELBv2:     elbv2.NewFromConfig(cfg),
		Beanstalk: eb.NewFromConfig(cfg),
		OpsWorks:  opsworks.NewFromConfig(cfg),
		RDS:       rds.NewFromConfig(cfg),
	}
}

// ---------------------------------------------------------------------------
// RegionalClients
// ---------------------------------------------------------------------------

// RegionalClients builds one ClientSet per region for a loaded profile and
// reuses it for the rest of that profile's sweep. It is not safe for
// concurrent use.
type RegionalClients struct {
	provider AWSClientProvider
	profile  *ProfileConfig
	factory  ClientFactory
	sets     map[string]*ClientSet
}

// NewRegionalClients returns an empty cache for profile.
func NewRegionalClients(provider AWSClientProvider, profile *ProfileConfig, factory ClientFactory) *RegionalClients {
	return &RegionalClients{
		provider: provider,
		profile:  profile,
		factory:  factory,
		sets:     make(map[string]*ClientSet),
	}
}

// For returns the ClientSet scoped to region, constructing it on first use.
func (r *RegionalClients) For(region string) *ClientSet {
	if cs, ok := r.sets[region]; ok {
		return cs
	}
	cs := r.factory(r.provider.ConfigForRegion(r.profile, region))
	r.sets[region] = cs
	return cs
}
