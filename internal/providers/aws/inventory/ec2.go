package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/paginate"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
)

// ownerSelf restricts snapshot and image listings to the caller's account.
// Without it DescribeSnapshots and DescribeImages also return every public
// resource in the region.
const ownerSelf = "self"

// Volumes pages through every EBS volume in region.
func Volumes(ctx context.Context, client common.EC2Client, region string) ([]models.Volume, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ec2types.Volume, *string, error) {
		out, err := client.DescribeVolumes(ctx, &ec2svc.DescribeVolumesInput{NextToken: token})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeVolumes: %w", err)
		}
		return out.Volumes, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	vols := make([]models.Volume, 0, len(raw))
	for _, v := range raw {
		vols = append(vols, toVolume(v, region))
	}
	return vols, nil
}

// toVolume converts an SDK EBS volume to the internal model.
func toVolume(v ec2types.Volume, region string) models.Volume {
	var attachments []string
	for _, a := range v.Attachments {
		if id := aws.ToString(a.InstanceId); id != "" {
			attachments = append(attachments, id)
		}
	}
	return models.Volume{
		VolumeID:    aws.ToString(v.VolumeId),
		Region:      region,
		State:       string(v.State),
		SizeGB:      aws.ToInt32(v.Size),
		Attachments: attachments,
	}
}

// Snapshots pages through every completed EBS snapshot owned by the account.
func Snapshots(ctx context.Context, client common.EC2Client, region string) ([]models.Snapshot, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ec2types.Snapshot, *string, error) {
		out, err := client.DescribeSnapshots(ctx, &ec2svc.DescribeSnapshotsInput{
			OwnerIds: []string{ownerSelf},
			Filters: []ec2types.Filter{
				{Name: aws.String("status"), Values: []string{string(ec2types.SnapshotStateCompleted)}},
			},
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeSnapshots: %w", err)
		}
		return out.Snapshots, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	snaps := make([]models.Snapshot, 0, len(raw))
	for _, s := range raw {
		snaps = append(snaps, models.Snapshot{
			SnapshotID: aws.ToString(s.SnapshotId),
			Region:     region,
			VolumeID:   aws.ToString(s.VolumeId),
		})
	}
	return snaps, nil
}

// Images pages through every available AMI owned by the account.
func Images(ctx context.Context, client common.EC2Client, region string) ([]models.Image, error) {
	raw, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ec2types.Image, *string, error) {
		out, err := client.DescribeImages(ctx, &ec2svc.DescribeImagesInput{
			Owners: []string{ownerSelf},
			Filters: []ec2types.Filter{
				{Name: aws.String("state"), Values: []string{string(ec2types.ImageStateAvailable)}},
			},
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("DescribeImages: %w", err)
		}
		return out.Images, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	images := make([]models.Image, 0, len(raw))
	for _, img := range raw {
		images = append(images, toImage(img, region))
	}
	return images, nil
}

// toImage converts an SDK AMI to the internal model. Instance-store and
// no-device mappings carry no snapshot and are dropped.
func toImage(img ec2types.Image, region string) models.Image {
	var snapshotIDs []string
	for _, m := range img.BlockDeviceMappings {
		if m.Ebs == nil {
			continue
		}
		if id := aws.ToString(m.Ebs.SnapshotId); id != "" {
			snapshotIDs = append(snapshotIDs, id)
		}
	}
	return models.Image{
		ImageID:     aws.ToString(img.ImageId),
		Region:      region,
		SnapshotIDs: snapshotIDs,
	}
}

// Addresses lists every Elastic IP in region. DescribeAddresses is not
// paginated.
func Addresses(ctx context.Context, client common.EC2Client, region string) ([]models.Address, error) {
	out, err := client.DescribeAddresses(ctx, &ec2svc.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("DescribeAddresses: %w", err)
	}

	addrs := make([]models.Address, 0, len(out.Addresses))
	for _, a := range out.Addresses {
		addrs = append(addrs, models.Address{
			PublicIP:     aws.ToString(a.PublicIp),
			AllocationID: aws.ToString(a.AllocationId),
			Region:       region,
			InstanceID:   aws.ToString(a.InstanceId),
		})
	}
	return addrs, nil
}
