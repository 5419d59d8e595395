package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/ckmirror/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"

	// Production enables structured JSON logging.
	Production Environment = "production"
)

// FromEnv reads the environment from CKMIRROR_ENV.
// Unrecognized or empty values fall back to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.CkmirrorEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
