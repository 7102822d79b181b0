// Package schemeregistry serves the investment scheme catalogue. The
// embedded list is authoritative; a remote registry, when configured, may
// override the indicative return of individual schemes.
package schemeregistry

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"easywealth/internal/risk"
)

//go:embed schemes.yaml
var embedded []byte

type Scheme struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Risk        string `yaml:"risk" json:"risk"`
	ReturnRate  string `yaml:"return_rate" json:"return_rate"`
	Description string `yaml:"description" json:"description"`
	Badge       string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// Filter narrows a listing; empty fields match everything
type Filter struct {
	Risk []string
	Type string
}

func (f Filter) match(s Scheme) bool {
	if f.Type != "" && !strings.EqualFold(f.Type, s.Type) {
		return false
	}
	if len(f.Risk) == 0 {
		return true
	}
	for _, r := range f.Risk {
		if strings.EqualFold(r, s.Risk) {
			return true
		}
	}
	return false
}

// Catalogue is safe for concurrent use
type Catalogue struct {
	schemes []Scheme
	remote  *Remote
}

// Parse decodes a YAML scheme list
func Parse(b []byte) ([]Scheme, error) {
	var schemes []Scheme
	if err := yaml.Unmarshal(b, &schemes); err != nil {
		return nil, fmt.Errorf("parse scheme catalogue: %w", err)
	}
	seen := make(map[string]bool, len(schemes))
	for _, s := range schemes {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("parse scheme catalogue: scheme without id or name")
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("parse scheme catalogue: duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return schemes, nil
}

// Load builds the catalogue from the embedded list; remote may be nil
func Load(remote *Remote) (*Catalogue, error) {
	schemes, err := Parse(embedded)
	if err != nil {
		return nil, err
	}
	return New(schemes, remote), nil
}

func New(schemes []Scheme, remote *Remote) *Catalogue {
	return &Catalogue{schemes: schemes, remote: remote}
}

// List returns matching schemes in catalogue order with remote overrides applied
func (c *Catalogue) List(ctx context.Context, f Filter) []Scheme {
	var out []Scheme
	for _, s := range c.schemes {
		if f.match(s) {
			out = append(out, s)
		}
	}
	if out == nil {
		return []Scheme{}
	}
	if c.remote == nil {
		return out
	}

	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	rates := c.remote.ReturnRates(ctx, ids)
	for i := range out {
		if r, ok := rates[out[i].ID]; ok && r != "" {
			out[i].ReturnRate = r
		}
	}
	return out
}

// RiskBands maps a tier to the scheme risk bands suited to it
func RiskBands(t risk.Tier) []string {
	switch t {
	case risk.Conservative:
		return []string{"Low"}
	case risk.Balanced:
		return []string{"Low", "Medium"}
	default:
		return nil
	}
}

// RecommendedFor lists schemes suited to a tier; Unknown and Aggressive see all
func (c *Catalogue) RecommendedFor(ctx context.Context, t risk.Tier) []Scheme {
	return c.List(ctx, Filter{Risk: RiskBands(t)})
}
