package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/paginate"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// DBSnapshots pages through every RDS DB snapshot in region, following the
// Marker chain until it is exhausted.
func DBSnapshots(ctx context.Context, client common.RDSClient, region string) ([]models.DBSnapshot, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]rdstypes.DBSnapshot, *string, error) {
		out, err := client.DescribeDBSnapshots(ctx, &rdssvc.DescribeDBSnapshotsInput{Marker: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeDBSnapshots: %w", err)
		}
		return out.DBSnapshots, out.Marker, nil
	})
	if err != nil {
		return nil, err
	}

	snaps := make([]models.DBSnapshot, 0, len(raw))
	for _, s := range raw {
		snaps = append(snaps, models.DBSnapshot{
			SnapshotID:       aws.ToString(s.DBSnapshotIdentifier),
			Region:           region,
			SourceInstanceID: aws.ToString(s.DBInstanceIdentifier),
		})
	}
	return snaps, nil
}

// DBInstances pages through every RDS DB instance in region.
func DBInstances(ctx context.Context, client common.RDSClient, region string) ([]models.DBInstance, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]rdstypes.DBInstance, *string, error) {
		out, err := client.DescribeDBInstances(ctx, &rdssvc.DescribeDBInstancesInput{Marker: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeDBInstances: %w", err)
		}
		return out.DBInstances, out.Marker, nil
	})
	if err != nil {
		return nil, err
	}

	instances := make([]models.DBInstance, 0, len(raw))
	for _, db := range raw {
		instances = append(instances, models.DBInstance{
			DBInstanceID: aws.ToString(db.DBInstanceIdentifier),
			Region:       region,
			Status:       aws.ToString(db.DBInstanceStatus),
		})
	}
	return instances, nil
}
