package types

import (
	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  hclog.Logger
	Config  config.Config
	Workers int // 0 picks a default per task
}

// VersionOrDefault returns the version, tolerating a nil context
func (a *AppContext) VersionOrDefault() string {
	if a == nil || a.Version == "" {
		return DefaultVersion
	}
	return a.Version
}

// Log returns the configured logger or a null logger
func (a *AppContext) Log() hclog.Logger {
	if a == nil || a.Logger == nil {
		return hclog.NewNullLogger()
	}
	return a.Logger
}

// Settings returns the loaded configuration or the defaults
func (a *AppContext) Settings() config.Config {
	if a == nil {
		return config.Default()
	}
	return a.Config
}
