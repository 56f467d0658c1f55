package sweep

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	ebsvc "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	elbsvc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/opsworks"
	opsworkstypes "github.com/aws/aws-sdk-go-v2/service/opsworks/types"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// ---------------------------------------------------------------------------
// fakeCloud: canned inventory per region, shared by every profile
// ---------------------------------------------------------------------------

type regionData struct {
	classic     []elbtypes.LoadBalancerDescription
	volumes     []ec2types.Volume
	snapshots   []ec2types.Snapshot
	images      []ec2types.Image
	addresses   []ec2types.Address
	envs        []ebtypes.EnvironmentDescription
	stacks      []opsworkstypes.Stack
	dbSnapshots []rdstypes.DBSnapshot
	dbInstances []rdstypes.DBInstance

	// errs maps an operation name to the error it returns. A
	// "profile/Operation" key fails the call for that profile only.
	errs map[string]error
}

type fakeCloud struct {
	regions map[string]*regionData
	// calls records "profile/region/Operation" for every API call.
	calls []string
	// built records "profile/region" for every ClientSet constructed.
	built []string
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{regions: make(map[string]*regionData)}
}

func (c *fakeCloud) region(name string) *regionData {
	rd, ok := c.regions[name]
	if !ok {
		rd = &regionData{}
		c.regions[name] = rd
	}
	return rd
}

// factory builds fake clients. The profile name travels in aws.Config.AppID,
// set by fakeProvider.ConfigForRegion.
func (c *fakeCloud) factory(cfg aws.Config) *common.ClientSet {
	c.built = append(c.built, cfg.AppID+"/"+cfg.Region)
	h := &handle{cloud: c, profile: cfg.AppID, region: cfg.Region, data: c.region(cfg.Region)}
	return &common.ClientSet{
		EC2:       fakeEC2{h},
		ELB:       fakeELB{h},
		ELBv2:     fakeELBv2{h},
		Beanstalk: fakeBeanstalk{h},
		OpsWorks:  fakeOpsWorks{h},
		RDS:       fakeRDS{h},
	}
}

type handle struct {
	cloud   *fakeCloud
	profile string
	region  string
	data    *regionData
}

func (h *handle) call(op string) error {
	h.cloud.calls = append(h.cloud.calls, fmt.Sprintf("%s/%s/%s", h.profile, h.region, op))
	if err, ok := h.data.errs[h.profile+"/"+op]; ok {
		return err
	}
	return h.data.errs[op]
}

// ---------------------------------------------------------------------------
// fakeProvider
// ---------------------------------------------------------------------------

type fakeProvider struct {
	accounts map[string]string
	loadErrs map[string]error
	loaded   []string
}

func (p *fakeProvider) LoadProfile(_ context.Context, profile string) (*common.ProfileConfig, error) {
	p.loaded = append(p.loaded, profile)
	if err := p.loadErrs[profile]; err != nil {
		return nil, err
	}
	return &common.ProfileConfig{
		ProfileName: common.ProfileDisplayName(profile),
		AccountID:   p.accounts[profile],
		Config:      aws.Config{Region: "us-east-1", AppID: profile},
	}, nil
}

func (p *fakeProvider) ConfigForRegion(pc *common.ProfileConfig, region string) aws.Config {
	cfg := pc.Config
	cfg.Region = region
	return cfg
}

// ---------------------------------------------------------------------------
// Service fakes
// ---------------------------------------------------------------------------

type fakeEC2 struct{ *handle }

func (f fakeEC2) DescribeVolumes(context.Context, *ec2svc.DescribeVolumesInput, ...func(*ec2svc.Options)) (*ec2svc.DescribeVolumesOutput, error) {
	if err := f.call("DescribeVolumes"); err != nil {
		return nil, err
	}
	return &ec2svc.DescribeVolumesOutput{Volumes: f.data.volumes}, nil
}

func (f fakeEC2) DescribeSnapshots(context.Context, *ec2svc.DescribeSnapshotsInput, ...func(*ec2svc.Options)) (*ec2svc.DescribeSnapshotsOutput, error) {
	if err := f.call("DescribeSnapshots"); err != nil {
		return nil, err
	}
	return &ec2svc.DescribeSnapshotsOutput{Snapshots: f.data.snapshots}, nil
}

func (f fakeEC2) DescribeImages(context.Context, *ec2svc.DescribeImagesInput, ...func(*ec2svc.Options)) (*ec2svc.DescribeImagesOutput, error) {
	if err := f.call("DescribeImages"); err != nil {
		return nil, err
	}
	return &ec2svc.DescribeImagesOutput{Images: f.data.images}, nil
}

func (f fakeEC2) DescribeAddresses(context.Context, *ec2svc.DescribeAddressesInput, ...func(*ec2svc.Options)) (*ec2svc.DescribeAddressesOutput, error) {
	if err := f.call("DescribeAddresses"); err != nil {
		return nil, err
	}
	return &ec2svc.DescribeAddressesOutput{Addresses: f.data.addresses}, nil
}

type fakeELB struct{ *handle }

func (f fakeELB) DescribeLoadBalancers(context.Context, *elbsvc.DescribeLoadBalancersInput, ...func(*elbsvc.Options)) (*elbsvc.DescribeLoadBalancersOutput, error) {
	if err := f.call("DescribeLoadBalancers"); err != nil {
		return nil, err
	}
	return &elbsvc.DescribeLoadBalancersOutput{LoadBalancerDescriptions: f.data.classic}, nil
}

type fakeELBv2 struct{ *handle }

func (f fakeELBv2) DescribeLoadBalancers(context.Context, *elbv2svc.DescribeLoadBalancersInput, ...func(*elbv2svc.Options)) (*elbv2svc.DescribeLoadBalancersOutput, error) {
	if err := f.call("DescribeLoadBalancersV2"); err != nil {
		return nil, err
	}
	return &elbv2svc.DescribeLoadBalancersOutput{LoadBalancers: []elbv2types.LoadBalancer{}}, nil
}

func (f fakeELBv2) DescribeTargetGroups(context.Context, *elbv2svc.DescribeTargetGroupsInput, ...func(*elbv2svc.Options)) (*elbv2svc.DescribeTargetGroupsOutput, error) {
	return &elbv2svc.DescribeTargetGroupsOutput{}, f.call("DescribeTargetGroups")
}

func (f fakeELBv2) DescribeTargetHealth(context.Context, *elbv2svc.DescribeTargetHealthInput, ...func(*elbv2svc.Options)) (*elbv2svc.DescribeTargetHealthOutput, error) {
	return &elbv2svc.DescribeTargetHealthOutput{}, f.call("DescribeTargetHealth")
}

type fakeBeanstalk struct{ *handle }

func (f fakeBeanstalk) DescribeEnvironments(context.Context, *ebsvc.DescribeEnvironmentsInput, ...func(*ebsvc.Options)) (*ebsvc.DescribeEnvironmentsOutput, error) {
	if err := f.call("DescribeEnvironments"); err != nil {
		return nil, err
	}
	return &ebsvc.DescribeEnvironmentsOutput{Environments: f.data.envs}, nil
}

// fakeOpsWorks reports fixed sub-resource counts (1, 2, 3, 0, 0, 1) for every stack.
type fakeOpsWorks struct{ *handle }

func (f fakeOpsWorks) DescribeStacks(context.Context, *opsworks.DescribeStacksInput, ...func(*opsworks.Options)) (*opsworks.DescribeStacksOutput, error) {
	if err := f.call("DescribeStacks"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeStacksOutput{Stacks: f.data.stacks}, nil
}

func (f fakeOpsWorks) DescribeEcsClusters(context.Context, *opsworks.DescribeEcsClustersInput, ...func(*opsworks.Options)) (*opsworks.DescribeEcsClustersOutput, error) {
	return &opsworks.DescribeEcsClustersOutput{EcsClusters: make([]opsworkstypes.EcsCluster, 1)}, f.call("DescribeEcsClusters")
}

func (f fakeOpsWorks) DescribeElasticIps(context.Context, *opsworks.DescribeElasticIpsInput, ...func(*opsworks.Options)) (*opsworks.DescribeElasticIpsOutput, error) {
	return &opsworks.DescribeElasticIpsOutput{ElasticIps: make([]opsworkstypes.ElasticIp, 2)}, f.call("DescribeElasticIps")
}

func (f fakeOpsWorks) DescribeInstances(context.Context, *opsworks.DescribeInstancesInput, ...func(*opsworks.Options)) (*opsworks.DescribeInstancesOutput, error) {
	return &opsworks.DescribeInstancesOutput{Instances: make([]opsworkstypes.Instance, 3)}, f.call("DescribeInstances")
}

func (f fakeOpsWorks) DescribeElasticLoadBalancers(context.Context, *opsworks.DescribeElasticLoadBalancersInput, ...func(*opsworks.Options)) (*opsworks.DescribeElasticLoadBalancersOutput, error) {
	return &opsworks.DescribeElasticLoadBalancersOutput{}, f.call("DescribeElasticLoadBalancers")
}

func (f fakeOpsWorks) DescribeRdsDbInstances(context.Context, *opsworks.DescribeRdsDbInstancesInput, ...func(*opsworks.Options)) (*opsworks.DescribeRdsDbInstancesOutput, error) {
	return &opsworks.DescribeRdsDbInstancesOutput{}, f.call("DescribeRdsDbInstances")
}

func (f fakeOpsWorks) DescribeVolumes(context.Context, *opsworks.DescribeVolumesInput, ...func(*opsworks.Options)) (*opsworks.DescribeVolumesOutput, error) {
	return &opsworks.DescribeVolumesOutput{Volumes: make([]opsworkstypes.Volume, 1)}, f.call("DescribeVolumesOpsWorks")
}

type fakeRDS struct{ *handle }

func (f fakeRDS) DescribeDBSnapshots(context.Context, *rdssvc.DescribeDBSnapshotsInput, ...func(*rdssvc.Options)) (*rdssvc.DescribeDBSnapshotsOutput, error) {
	if err := f.call("DescribeDBSnapshots"); err != nil {
		return nil, err
	}
	return &rdssvc.DescribeDBSnapshotsOutput{DBSnapshots: f.data.dbSnapshots}, nil
}

func (f fakeRDS) DescribeDBInstances(context.Context, *rdssvc.DescribeDBInstancesInput, ...func(*rdssvc.Options)) (*rdssvc.DescribeDBInstancesOutput, error) {
	if err := f.call("DescribeDBInstances"); err != nil {
		return nil, err
	}
	return &rdssvc.DescribeDBInstancesOutput{DBInstances: f.data.dbInstances}, nil
}
