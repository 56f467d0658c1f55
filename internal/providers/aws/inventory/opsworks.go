package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/opsworks"
	opsworkstypes "github.com/aws/aws-sdk-go-v2/service/opsworks/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/paginate"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// Stacks lists every OpsWorks stack visible from region.
func Stacks(ctx context.Context, client common.OpsWorksClient, region string) ([]models.Stack, error) {
	out, err := client.DescribeStacks(ctx, &opsworks.DescribeStacksInput{})
	if err != nil {
		return nil, fmt.Errorf("DescribeStacks: %w", err)
	}

	stacks := make([]models.Stack, 0, len(out.Stacks))
	for _, s := range out.Stacks {
		stacks = append(stacks, models.Stack{
			StackID: aws.ToString(s.StackId),
			Name:    aws.ToString(s.Name),
			Region:  region,
		})
	}
	return stacks, nil
}

// Inventory counts the sub-resources registered with stack. The six
// describe calls are issued in a fixed order: ECS clusters, Elastic IPs,
// instances, load balancers, RDS instances, volumes.
func Inventory(ctx context.Context, client common.OpsWorksClient, stack models.Stack) (models.StackInventory, error) {
	inv := models.StackInventory{Stack: stack}
	id := aws.String(stack.StackID)

	clusters, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]opsworkstypes.EcsCluster, *string, error) {
		out, err := client.DescribeEcsClusters(ctx, &opsworks.DescribeEcsClustersInput{StackId: id, NextToken: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeEcsClusters %s: %w", stack.StackID, err)
		}
		return out.EcsClusters, out.NextToken, nil
	})
	if err != nil {
		return inv, err
	}
	inv.ECSClusters = len(clusters)

	eips, err := client.DescribeElasticIps(ctx, &opsworks.DescribeElasticIpsInput{StackId: id})
	if err != nil {
		return inv, fmt.Errorf("DescribeElasticIps %s: %w", stack.StackID, err)
	}
	inv.ElasticIPs = len(eips.ElasticIps)

	instances, err := client.DescribeInstances(ctx, &opsworks.DescribeInstancesInput{StackId: id})
	if err != nil {
		return inv, fmt.Errorf("DescribeInstances %s: %w", stack.StackID, err)
	}
	inv.Instances = len(instances.Instances)

	lbs, err := client.DescribeElasticLoadBalancers(ctx, &opsworks.DescribeElasticLoadBalancersInput{StackId: id})
	if err != nil {
		return inv, fmt.Errorf("DescribeElasticLoadBalancers %s: %w", stack.StackID, err)
	}
	inv.LoadBalancers = len(lbs.ElasticLoadBalancers)

	dbs, err := client.DescribeRdsDbInstances(ctx, &opsworks.DescribeRdsDbInstancesInput{StackId: id})
	if err != nil {
		return inv, fmt.Errorf("DescribeRdsDbInstances %s: %w", stack.StackID, err)
	}
	inv.RDSInstances = len(dbs.RdsDbInstances)

	vols, err := client.DescribeVolumes(ctx, &opsworks.DescribeVolumesInput{StackId: id})
	if err != nil {
		return inv, fmt.Errorf("DescribeVolumes %s: %w", stack.StackID, err)
	}
	inv.Volumes = len(vols.Volumes)

	return inv, nil
}
