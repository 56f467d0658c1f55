package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// OrphanedDBSnapshots returns the DB snapshots whose source instance
// identifier matches no existing DB instance. A snapshot without a source
// identifier is orphaned.
func OrphanedDBSnapshots(snaps []models.DBSnapshot, instances []models.DBInstance) []models.DBSnapshot {
	live := make(map[string]struct{}, len(instances))
	for _, db := range instances {
		live[db.DBInstanceID] = struct{}{}
	}

	var out []models.DBSnapshot
	for _, s := range snaps {
		if s.SourceInstanceID == "" {
			out = append(out, s)
			continue
		}
		if _, ok := live[s.SourceInstanceID]; !ok {
			out = append(out, s)
		}
	}
	return out
}
