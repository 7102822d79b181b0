// Package risk derives a risk tier from conversational replies and holds the
// tier cell a workspace shares with its readers.
package risk

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Tier is a user's tolerance for volatility
type Tier uint8

const (
	Unknown Tier = iota
	Conservative
	Balanced
	Aggressive
)

var tierNames = [...]string{
	Unknown:      "Unknown",
	Conservative: "Conservative",
	Balanced:     "Balanced",
	Aggressive:   "Aggressive",
}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Known reports whether a profile has been established
func (t Tier) Known() bool { return t >= Conservative && t <= Aggressive }

// ParseTier accepts tier names and the low/moderate/high aliases, any case
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown", "":
		return Unknown, nil
	case "conservative", "low":
		return Conservative, nil
	case "balanced", "moderate":
		return Balanced, nil
	case "aggressive", "high":
		return Aggressive, nil
	}
	return Unknown, fmt.Errorf("unknown risk tier %q", s)
}

func (t Tier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
