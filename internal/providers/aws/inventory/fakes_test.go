package inventory

import (
	"context"
	"errors"

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
)

var errFake = errors.New("fake API failure")

// pageKey maps a request token to a map key; the first page is "".
func pageKey(token *string) string { return aws.ToString(token) }

// nextToken returns nil for the last page so fakes only need to list the
// tokens that lead somewhere.
func nextToken(next map[string]string, token *string) *string {
	if n, ok := next[pageKey(token)]; ok {
		return aws.String(n)
	}
	return nil
}

// ---------------------------------------------------------------------------
// EC2
// ---------------------------------------------------------------------------

type fakeEC2 struct {
	volumes   map[string][]ec2types.Volume
	snapshots map[string][]ec2types.Snapshot
	images    map[string][]ec2types.Image
	addresses []ec2types.Address
	next      map[string]string
	err       error

	snapshotInputs []*ec2svc.DescribeSnapshotsInput
	imageInputs    []*ec2svc.DescribeImagesInput
}

func (f *fakeEC2) DescribeVolumes(_ context.Context, in *ec2svc.DescribeVolumesInput, _ ...func(*ec2svc.Options)) (*ec2svc.DescribeVolumesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2svc.DescribeVolumesOutput{
		Volumes:   f.volumes[pageKey(in.NextToken)],
		NextToken: nextToken(f.next, in.NextToken),
	}, nil
}

func (f *fakeEC2) DescribeSnapshots(_ context.Context, in *ec2svc.DescribeSnapshotsInput, _ ...func(*ec2svc.Options)) (*ec2svc.DescribeSnapshotsOutput, error) {
	f.snapshotInputs = append(f.snapshotInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ec2svc.DescribeSnapshotsOutput{
		Snapshots: f.snapshots[pageKey(in.NextToken)],
		NextToken: nextToken(f.next, in.NextToken),
	}, nil
}

func (f *fakeEC2) DescribeImages(_ context.Context, in *ec2svc.DescribeImagesInput, _ ...func(*ec2svc.Options)) (*ec2svc.DescribeImagesOutput, error) {
	f.imageInputs = append(f.imageInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ec2svc.DescribeImagesOutput{
		Images:    f.images[pageKey(in.NextToken)],
		NextToken: nextToken(f.next, in.NextToken),
	}, nil
}

func (f *fakeEC2) DescribeAddresses(_ context.Context, _ *ec2svc.DescribeAddressesInput, _ ...func(*ec2svc.Options)) (*ec2svc.DescribeAddressesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2svc.DescribeAddressesOutput{Addresses: f.addresses}, nil
}

// ---------------------------------------------------------------------------
// Load balancing
// ---------------------------------------------------------------------------

type fakeELB struct {
	pages map[string][]elbtypes.LoadBalancerDescription
	next  map[string]string
	err   error
}

func (f *fakeELB) DescribeLoadBalancers(_ context.Context, in *elbsvc.DescribeLoadBalancersInput, _ ...func(*elbsvc.Options)) (*elbsvc.DescribeLoadBalancersOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &elbsvc.DescribeLoadBalancersOutput{
		LoadBalancerDescriptions: f.pages[pageKey(in.Marker)],
		NextMarker:               nextToken(f.next, in.Marker),
	}, nil
}

type fakeELBv2 struct {
	lbs []elbv2types.LoadBalancer
	// groups maps load balancer ARN to its target group ARNs.
	groups map[string][]string
	// targets maps target group ARN to registered target IDs.
	targets map[string][]string
	err     error
}

func (f *fakeELBv2) DescribeLoadBalancers(_ context.Context, _ *elbv2svc.DescribeLoadBalancersInput, _ ...func(*elbv2svc.Options)) (*elbv2svc.DescribeLoadBalancersOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &elbv2svc.DescribeLoadBalancersOutput{LoadBalancers: f.lbs}, nil
}

func (f *fakeELBv2) DescribeTargetGroups(_ context.Context, in *elbv2svc.DescribeTargetGroupsInput, _ ...func(*elbv2svc.Options)) (*elbv2svc.DescribeTargetGroupsOutput, error) {
	var groups []elbv2types.TargetGroup
	for _, arn := range f.groups[aws.ToString(in.LoadBalancerArn)] {
		groups = append(groups, elbv2types.TargetGroup{TargetGroupArn: aws.String(arn)})
	}
	return &elbv2svc.DescribeTargetGroupsOutput{TargetGroups: groups}, nil
}

func (f *fakeELBv2) DescribeTargetHealth(_ context.Context, in *elbv2svc.DescribeTargetHealthInput, _ ...func(*elbv2svc.Options)) (*elbv2svc.DescribeTargetHealthOutput, error) {
	var descs []elbv2types.TargetHealthDescription
	for _, id := range f.targets[aws.ToString(in.TargetGroupArn)] {
		descs = append(descs, elbv2types.TargetHealthDescription{
			Target: &elbv2types.TargetDescription{Id: aws.String(id)},
		})
	}
	return &elbv2svc.DescribeTargetHealthOutput{TargetHealthDescriptions: descs}, nil
}

// ---------------------------------------------------------------------------
// Elastic Beanstalk
// ---------------------------------------------------------------------------

type fakeBeanstalk struct {
	pages  map[string][]ebtypes.EnvironmentDescription
	next   map[string]string
	inputs []*ebsvc.DescribeEnvironmentsInput
}

func (f *fakeBeanstalk) DescribeEnvironments(_ context.Context, in *ebsvc.DescribeEnvironmentsInput, _ ...func(*ebsvc.Options)) (*ebsvc.DescribeEnvironmentsOutput, error) {
	f.inputs = append(f.inputs, in)
	return &ebsvc.DescribeEnvironmentsOutput{
		Environments: f.pages[pageKey(in.NextToken)],
		NextToken:    nextToken(f.next, in.NextToken),
	}, nil
}

// ---------------------------------------------------------------------------
// OpsWorks
// ---------------------------------------------------------------------------

type fakeOpsWorks struct {
	stacks []opsworkstypes.Stack
	// counts per stack ID: clusters, eips, instances, elbs, rds, volumes.
	counts map[string][6]int
	failOn string
	calls  []string
}

func (f *fakeOpsWorks) record(op string) error {
	f.calls = append(f.calls, op)
	if op == f.failOn {
		return errFake
	}
	return nil
}

func (f *fakeOpsWorks) DescribeStacks(_ context.Context, _ *opsworks.DescribeStacksInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeStacksOutput, error) {
	if err := f.record("DescribeStacks"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeStacksOutput{Stacks: f.stacks}, nil
}

func (f *fakeOpsWorks) DescribeEcsClusters(_ context.Context, in *opsworks.DescribeEcsClustersInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeEcsClustersOutput, error) {
	if err := f.record("DescribeEcsClusters"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeEcsClustersOutput{
		EcsClusters: make([]opsworkstypes.EcsCluster, f.counts[aws.ToString(in.StackId)][0]),
	}, nil
}

func (f *fakeOpsWorks) DescribeElasticIps(_ context.Context, in *opsworks.DescribeElasticIpsInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeElasticIpsOutput, error) {
	if err := f.record("DescribeElasticIps"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeElasticIpsOutput{
		ElasticIps: make([]opsworkstypes.ElasticIp, f.counts[aws.ToString(in.StackId)][1]),
	}, nil
}

func (f *fakeOpsWorks) DescribeInstances(_ context.Context, in *opsworks.DescribeInstancesInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeInstancesOutput, error) {
	if err := f.record("DescribeInstances"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeInstancesOutput{
		Instances: make([]opsworkstypes.Instance, f.counts[aws.ToString(in.StackId)][2]),
	}, nil
}

func (f *fakeOpsWorks) DescribeElasticLoadBalancers(_ context.Context, in *opsworks.DescribeElasticLoadBalancersInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeElasticLoadBalancersOutput, error) {
	if err := f.record("DescribeElasticLoadBalancers"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeElasticLoadBalancersOutput{
		ElasticLoadBalancers: make([]opsworkstypes.ElasticLoadBalancer, f.counts[aws.ToString(in.StackId)][3]),
	}, nil
}

func (f *fakeOpsWorks) DescribeRdsDbInstances(_ context.Context, in *opsworks.DescribeRdsDbInstancesInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeRdsDbInstancesOutput, error) {
	if err := f.record("DescribeRdsDbInstances"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeRdsDbInstancesOutput{
		RdsDbInstances: make([]opsworkstypes.RdsDbInstance, f.counts[aws.ToString(in.StackId)][4]),
	}, nil
}

func (f *fakeOpsWorks) DescribeVolumes(_ context.Context, in *opsworks.DescribeVolumesInput, _ ...func(*opsworks.Options)) (*opsworks.DescribeVolumesOutput, error) {
	if err := f.record("DescribeVolumes"); err != nil {
		return nil, err
	}
	return &opsworks.DescribeVolumesOutput{
		Volumes: make([]opsworkstypes.Volume, f.counts[aws.ToString(in.StackId)][5]),
	}, nil
}

// ---------------------------------------------------------------------------
// RDS
// ---------------------------------------------------------------------------

type fakeRDS struct {
	snapshots map[string][]rdstypes.DBSnapshot
	instances map[string][]rdstypes.DBInstance
	next      map[string]string
	err       error
	markers   []string
}

func (f *fakeRDS) DescribeDBSnapshots(_ context.Context, in *rdssvc.DescribeDBSnapshotsInput, _ ...func(*rdssvc.Options)) (*rdssvc.DescribeDBSnapshotsOutput, error) {
	f.markers = append(f.markers, pageKey(in.Marker))
	if f.err != nil {
		return nil, f.err
	}
	return &rdssvc.DescribeDBSnapshotsOutput{
		DBSnapshots: f.snapshots[pageKey(in.Marker)],
		Marker:      nextToken(f.next, in.Marker),
	}, nil
}

func (f *fakeRDS) DescribeDBInstances(_ context.Context, in *rdssvc.DescribeDBInstancesInput, _ ...func(*rdssvc.Options)) (*rdssvc.DescribeDBInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rdssvc.DescribeDBInstancesOutput{
		DBInstances: f.instances[pageKey(in.Marker)],
		Marker:      nextToken(f.next, in.Marker),
	}, nil
}
