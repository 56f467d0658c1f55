package sweep

import (
	"context"

	"github.com/pankaj-dahiya-devops/sweeper/internal/models"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/inventory"
	"github.com/pankaj-dahiya-devops/sweeper/internal/report"
	"github.com/pankaj-dahiya-devops/sweeper/internal/rules"
)

func builtinChecks() []Check {
	return []Check{
		{
			ID:      CheckELB,
			Title:   "\nChecking for orphaned ELB's in %s",
			Notes:   []string{"This sweep looks for ELB's without any attached instances."},
			Done:    "ELB sweep in %s complete",
			Summary: "All configured regions checked for orphaned ELB's",
			Sweep:   sweepLoadBalancers,
		},
		{
			ID:      CheckEBSVolumes,
			Title:   "\nChecking for unattached EBS Volumes in %s",
			Done:    "Volume sweep in %s complete",
			Summary: "All configured regions checked for unattached EBS volumes",
			Sweep:   sweepVolumes,
		},
		{
			ID:    CheckEBSSnapshots,
			Title: "\nChecking for unused snapshots in %s",
			Notes: []string{"**WARNING: This can take a long time. Please use with caution**"},
			Done:  "Snapshot sweep complete in %s",
			Sweep: sweepSnapshots,
		},
		{
			ID:    CheckEIPs,
			Title: "\nChecking for unattached EIP's in %s",
			Done:  "EIP sweep complete in %s",
			Sweep: sweepAddresses,
		},
		{
			ID:    CheckBeanstalk,
			Title: "\nChecking for Beanstalk environments still running in %s",
			Notes: []string{"This checks for environments which will keep services running at a cost"},
			Done:  "ElasticBeanstalk sweep complete in %s",
			Sweep: sweepEnvironments,
		},
		{
			ID:    CheckOpsWorks,
			Title: "\nChecking for Opsworks provisioned resources in %s",
			Notes: []string{
				"Opsworks has self-healing functionality that potentially could have",
				"healed a service that you destroyed elsewhere.",
			},
			Done:  "Opsworks sweep complete in %s",
			Sweep: sweepStacks,
		},
		{
			ID:    CheckRDSSnapshots,
			Title: "\nChecking for Orphaned RDS Snapshots in %s",
			Done:  "RDS Sweep complete in %s",
			Sweep: sweepDBSnapshots,
		},
	}
}

// sweepLoadBalancers reports classic orphans before the v2 listing is
// queried, so a v2 failure cannot hide them.
func sweepLoadBalancers(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	classic, err := inventory.ClassicLoadBalancers(ctx, cs.ELB, region)
	if err != nil {
		return err
	}
	reportUnattached(out, classic)

	modern, err := inventory.V2LoadBalancers(ctx, cs.ELBv2, region)
	if err != nil {
		return err
	}
	reportUnattached(out, modern)
	return nil
}

func reportUnattached(out report.Sink, lbs []models.LoadBalancer) {
	for _, lb := range rules.UnattachedLoadBalancers(lbs) {
		out.Line("%s does not have any instances attached", lb.Name)
	}
}

func sweepVolumes(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	vols, err := inventory.Volumes(ctx, cs.EC2, region)
	if err != nil {
		return err
	}
	for _, v := range rules.UnattachedVolumes(vols) {
		out.Line("%s does not have any attachments", v.VolumeID)
	}
	return nil
}

// sweepSnapshots reports only a count on screen; the IDs are listed when
// the report goes to a file.
func sweepSnapshots(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	snaps, err := inventory.Snapshots(ctx, cs.EC2, region)
	if err != nil {
		return err
	}
	images, err := inventory.Images(ctx, cs.EC2, region)
	if err != nil {
		return err
	}

	unused := rules.UnreferencedSnapshots(snaps, images)
	out.Line("There are %d snapshots to remove", len(unused))
	if out.Detailed() {
		for _, s := range unused {
			out.Line("%s", s.SnapshotID)
		}
	}
	return nil
}

func sweepAddresses(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	addrs, err := inventory.Addresses(ctx, cs.EC2, region)
	if err != nil {
		return err
	}
	for _, a := range rules.UnassociatedAddresses(addrs) {
		out.Line("%s is not attached to any instance.", a.PublicIP)
	}
	return nil
}

func sweepEnvironments(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	envs, err := inventory.Environments(ctx, cs.Beanstalk, region)
	if err != nil {
		return err
	}
	for _, e := range rules.RunningEnvironments(envs) {
		out.Line("%s is still running. Did you know this?", e.Name)
	}
	return nil
}

// sweepStacks reports what each OpsWorks stack manages. Nothing is judged
// orphaned; the counts are for the operator to act on.
func sweepStacks(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	stacks, err := inventory.Stacks(ctx, cs.OpsWorks, region)
	if err != nil {
		return err
	}
	for _, stack := range stacks {
		id := stack.StackID
		out.Line("Checking Stack ID %s for services. Information gathering for action.", id)

		inv, err := inventory.Inventory(ctx, cs.OpsWorks, stack)
		if err != nil {
			return err
		}
		out.Line("%s has %d running ECS Clusters", id, inv.ECSClusters)
		out.Line("%s has %d EIP's", id, inv.ElasticIPs)
		out.Line("%s has %d Ec2 instances running", id, inv.Instances)
		out.Line("%s has %d ELB's running", id, inv.LoadBalancers)
		out.Line("%s has %d RDS instances running", id, inv.RDSInstances)
		out.Line("%s has %d EBS Volumes registered", id, inv.Volumes)
	}
	return nil
}

func sweepDBSnapshots(ctx context.Context, cs *common.ClientSet, region string, out report.Sink) error {
	snaps, err := inventory.DBSnapshots(ctx, cs.RDS, region)
	if err != nil {
		return err
	}
	instances, err := inventory.DBInstances(ctx, cs.RDS, region)
	if err != nil {
		return err
	}
	for _, s := range rules.OrphanedDBSnapshots(snaps, instances) {
		out.Line("Snapshot %s no longer tied to an RDS instance", s.SnapshotID)
	}
	return nil
}
