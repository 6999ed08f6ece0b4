// Package environment names the deployment environments the service knows.
package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Test        Environment = "test"
	Production  Environment = "production"
)

// Parse maps GO_ENV style values onto an Environment. Unknown values are
// kept as-is so they are treated as non-production.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	case "dev", "development", "":
		return Development
	case "stage", "staging":
		return Staging
	case "test":
		return Test
	}
	return Environment(strings.ToLower(s))
}

func (e Environment) IsProduction() bool {
	return e == Production
}
