package rules

import "github.com/pankaj-dahiya-devops/sweeper/internal/models"

// Elastic Beanstalk statuses that mean the environment is gone or going.
const (
	beanstalkTerminating = "Terminating"
	beanstalkTerminated  = "Terminated"
)

// RunningEnvironments returns every environment that still exists. An
// environment is reported whatever its health; only terminated and
// terminating ones are left out.
func RunningEnvironments(envs []models.Environment) []models.Environment {
	var out []models.Environment
	for _, e := range envs {
		if e.Status == beanstalkTerminating || e.Status == beanstalkTerminated {
			continue
		}
		out = append(out, e)
	}
	return out
}
