package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// UnassociatedAddresses returns the Elastic IPs with no associated instance.
func UnassociatedAddresses(addrs []models.Address) []models.Address {
	var out []models.Address
	for _, a := range addrs {
		if a.InstanceID == "" {
			out = append(out, a)
		}
	}
	return out
}
