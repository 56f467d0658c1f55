package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// UnattachedVolumes returns the volumes with an empty attachment list.
// State is not consulted; a volume reporting no attachments is orphaned
// whatever its lifecycle state.
func UnattachedVolumes(vols []models.Volume) []models.Volume {
	var out []models.Volume
	for _, v := range vols {
		if len(v.Attachments) == 0 {
			out = append(out, v)
		}
	}
	return out
}
