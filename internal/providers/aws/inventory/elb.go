// Package inventory lists the AWS resources each sweep inspects and converts
// SDK responses into internal models. Every collector accumulates all pages
// before returning; none of them filter.
package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbsvc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/paginate"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// ClassicLoadBalancers returns every classic ELB in region with its
// attached instance IDs.
func ClassicLoadBalancers(ctx context.Context, client common.ELBClient, region string) ([]models.LoadBalancer, error) {
	descs, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]elbtypes.LoadBalancerDescription, *string, error) {
		out, err := client.DescribeLoadBalancers(ctx, &elbsvc.DescribeLoadBalancersInput{Marker: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeLoadBalancers (classic): %w", err)
		}
		return out.LoadBalancerDescriptions, out.NextMarker, nil
	})
	if err != nil {
		return nil, err
	}

	lbs := make([]models.LoadBalancer, 0, len(descs))
	for _, d := range descs {
		lbs = append(lbs, toClassicLoadBalancer(d, region))
	}
	return lbs, nil
}

// toClassicLoadBalancer converts an SDK classic ELB description to the
// internal model.
func toClassicLoadBalancer(d elbtypes.LoadBalancerDescription, region string) models.LoadBalancer {
	var instances []string
	for _, inst := range d.Instances {
		if id := aws.ToString(inst.InstanceId); id != "" {
			instances = append(instances, id)
		}
	}
	return models.LoadBalancer{
		Name:      aws.ToString(d.LoadBalancerName),
		Region:    region,
		Kind:      models.LoadBalancerClassic,
		Instances: instances,
	}
}

// V2LoadBalancers returns every application, network and gateway load
// balancer in region. Instances holds the target IDs registered in any of
// its target groups.
func V2LoadBalancers(ctx context.Context, client common.ELBv2Client, region string) ([]models.LoadBalancer, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]elbv2types.LoadBalancer, *string, error) {
		out, err := client.DescribeLoadBalancers(ctx, &elbv2svc.DescribeLoadBalancersInput{Marker: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeLoadBalancers (v2): %w", err)
		}
		return out.LoadBalancers, out.NextMarker, nil
	})
	if err != nil {
		return nil, err
	}

	lbs := make([]models.LoadBalancer, 0, len(raw))
	for _, lb := range raw {
		targets, err := registeredTargets(ctx, client, aws.ToString(lb.LoadBalancerArn))
		if err != nil {
			return nil, err
		}
		lbs = append(lbs, models.LoadBalancer{
			Name:      aws.ToString(lb.LoadBalancerName),
			ARN:       aws.ToString(lb.LoadBalancerArn),
			Region:    region,
			Kind:      v2Kind(lb.Type),
			Instances: targets,
		})
	}
	return lbs, nil
}

// registeredTargets returns the target IDs registered across every target
// group attached to the load balancer identified by arn.
func registeredTargets(ctx context.Context, client common.ELBv2Client, arn string) ([]string, error) {
	groups, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]elbv2types.TargetGroup, *string, error) {
		out, err := client.DescribeTargetGroups(ctx, &elbv2svc.DescribeTargetGroupsInput{
			LoadBalancerArn: aws.String(arn),
			Marker:          token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeTargetGroups %s: %w", arn, err)
		}
		return out.TargetGroups, out.NextMarker, nil
	})
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, g := range groups {
		out, err := client.DescribeTargetHealth(ctx, &elbv2svc.DescribeTargetHealthInput{
			TargetGroupArn: g.TargetGroupArn,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeTargetHealth %s: %w", aws.ToString(g.TargetGroupArn), err)
		}
		for _, d := range out.TargetHealthDescriptions {
			if d.Target == nil {
				continue
			}
			if id := aws.ToString(d.Target.Id); id != "" {
				targets = append(targets, id)
			}
		}
	}
	return targets, nil
}

// v2Kind maps the SDK load balancer type onto the model's kind names.
func v2Kind(t elbv2types.LoadBalancerTypeEnum) string {
	switch t {
	case elbv2types.LoadBalancerTypeEnumApplication:
		return models.LoadBalancerApplication
	case elbv2types.LoadBalancerTypeEnumNetwork:
		return models.LoadBalancerNetwork
	case elbv2types.LoadBalancerTypeEnumGateway:
		return models.LoadBalancerGateway
	default:
		return string(t)
	}
}
