package healthcheck

import (
	"context"
	"strings"
)

// ConfigProbe reports UP or CONFIGURED when its marker value is non-empty.
// It stands in for live checks against backends this gateway only
// simulates.
type ConfigProbe struct {
	name     string
	okStatus string
	marker   func() string
}

// NewConfigProbe builds a probe named name that reports okStatus when
// marker() is non-empty and UNCONFIGURED otherwise.
func NewConfigProbe(name, okStatus string, marker func() string) *ConfigProbe {
	return &ConfigProbe{name: name, okStatus: okStatus, marker: marker}
}

func (p *ConfigProbe) Name() string { return p.name }

func (p *ConfigProbe) Check(context.Context) Integration {
	if strings.TrimSpace(p.marker()) == "" {
		return Integration{Status: StatusUnconfigured}
	}
	return Integration{Status: p.okStatus}
}
