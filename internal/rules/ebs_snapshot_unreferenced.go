package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// UnreferencedSnapshots returns the snapshots that no image's block-device
// mappings reference. One referencing mapping on any image is enough to
// keep a snapshot.
func UnreferencedSnapshots(snaps []models.Snapshot, images []models.Image) []models.Snapshot {
	referenced := make(map[string]struct{})
	for _, img := range images {
		for _, id := range img.SnapshotIDs {
			referenced[id] = struct{}{}
		}
	}

	var out []models.Snapshot
	for _, s := range snaps {
		if _, ok := referenced[s.SnapshotID]; !ok {
			out = append(out, s)
		}
	}
	return out
}
