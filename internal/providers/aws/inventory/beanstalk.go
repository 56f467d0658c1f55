package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ebsvc "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/paginate"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// Environments pages through the Elastic Beanstalk environments in region.
// Deleted environments are excluded by the API; recently terminated ones
// may still be returned and are left for the caller to filter.
func Environments(ctx context.Context, client common.BeanstalkClient, region string) ([]models.Environment, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ebtypes.EnvironmentDescription, *string, error) {
		out, err := client.DescribeEnvironments(ctx, &ebsvc.DescribeEnvironmentsInput{
			IncludeDeleted: aws.Bool(false),
			NextToken:      token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeEnvironments: %w", err)
		}
		return out.Environments, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	envs := make([]models.Environment, 0, len(raw))
	for _, e := range raw {
		envs = append(envs, models.Environment{
			Name:            aws.ToString(e.EnvironmentName),
			ApplicationName: aws.ToString(e.ApplicationName),
			Region:          region,
			Status:          string(e.Status),
		})
	}
	return envs, nil
}
