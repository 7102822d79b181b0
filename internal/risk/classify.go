package risk

import "strings"

type rule struct {
	tier     Tier
	triggers []string
}

// Evaluated top to bottom; the first rule with any trigger present wins.
var rules = []rule{
	{Conservative, []string{"risk profile is conservative", "risk profile is low"}},
	{Balanced, []string{"risk profile is balanced", "risk profile is moderate"}},
	{Aggressive, []string{"risk profile is aggressive", "risk profile is high"}},
}

// Classify scans one utterance for a profile statement. It keeps no memory
// between calls; ok is false when nothing matched.
func Classify(utterance string) (Tier, bool) {
	lower := strings.ToLower(utterance)
	for _, r := range rules {
		for _, trig := range r.triggers {
			if strings.Contains(lower, trig) {
				return r.tier, true
			}
		}
	}
	return Unknown, false
}
