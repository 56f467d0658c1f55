// Package rules holds the orphan predicates applied to collected inventory.
// Rules are pure: they never call the AWS SDK or read external state, and
// they return matches in input order.
package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// UnattachedLoadBalancers returns the load balancers with no attached
// instances (classic) or no registered targets (v2).
func UnattachedLoadBalancers(lbs []models.LoadBalancer) []models.LoadBalancer {
	var out []models.LoadBalancer
	for _, lb := range lbs {
		if len(lb.Instances) == 0 {
			out = append(out, lb)
		}
	}
	return out
}
