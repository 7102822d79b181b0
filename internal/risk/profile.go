package risk

import "sync"

// Profile is the tier cell of one workspace. Reads are concurrent; Set is
// the only write path and overwrites whatever was there.
type Profile struct {
	mu   sync.RWMutex
	tier Tier
}

// NewProfile starts at Unknown
func NewProfile() *Profile { return &Profile{} }

// Tier returns the current tier
func (p *Profile) Tier() Tier {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tier
}

// Set overwrites the tier. Any tier may follow any other.
func (p *Profile) Set(t Tier) {
	p.mu.Lock()
	p.tier = t
	p.mu.Unlock()
}

// Observe classifies an utterance and, on a match, stores the result
// before returning it. A miss leaves the cell untouched.
func (p *Profile) Observe(utterance string) (Tier, bool) {
	t, ok := Classify(utterance)
	if ok {
		p.Set(t)
	}
	return t, ok
}
