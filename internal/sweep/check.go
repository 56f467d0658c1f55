// Package sweep runs the unused-resource checks across profiles and
// regions and writes their findings to a report.Sink.
package sweep

import (
	"context"

	"github.com/pankaj-dahiya-devops/sweeper/internal/providers/aws/common"
	"github.com/pankaj-dahiya-devops/sweeper/internal/report"
)

// CheckID is the stable name of a check, as used in checks_to_exclude.
type CheckID string

const (
	CheckELB          CheckID = "elb"
	CheckEBSVolumes   CheckID = "ebs-volumes"
	CheckEBSSnapshots CheckID = "ebs-snapshots"
	CheckEIPs         CheckID = "ec2-eips"
	CheckBeanstalk    CheckID = "elastic-beanstalk"
	CheckOpsWorks     CheckID = "opsworks"
	CheckRDSSnapshots CheckID = "rds-snapshots"
)

// SweepFunc queries one region and writes one line per finding to out. It
// must not write the region heading or completion line; the runner does.
type SweepFunc func(ctx context.Context, clients *common.ClientSet, region string, out report.Sink) error

// Check describes one sweep and the report text framing it.
type Check struct {
	ID CheckID

	// Title is the region heading; %s is the region. It begins with a
	// newline so each region block is separated by a blank line.
	Title string

	// Notes are printed under Title, before the separator.
	Notes []string

	// Done is the per-region completion line; %s is the region.
	Done string

	// Summary is printed once after every region has been swept. Empty
	// means no summary line.
	Summary string

	Sweep SweepFunc
}

// heading writes the region heading block.
func (c Check) heading(out report.Sink, region string) {
	out.Line(c.Title, region)
	for _, n := range c.Notes {
		out.Line("%s", n)
	}
	out.Line(report.Separator)
}
