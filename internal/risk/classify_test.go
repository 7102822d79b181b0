package risk

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTriggers(t *testing.T) {
	cases := []struct {
		text string
		want Tier
	}{
		{"Based on our chat, your risk profile is Balanced.", Balanced},
		{"your risk profile is conservative", Conservative},
		{"Your risk profile is LOW for now", Conservative},
		{"I think your risk profile is moderate.", Balanced},
		{"Great! Your risk profile is Aggressive.", Aggressive},
		{"RISK PROFILE IS HIGH", Aggressive},
	}
	for _, tc := range cases {
		got, ok := Classify(tc.text)
		require.True(t, ok, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	for _, text := range []string{
		"nice weather today",
		"",
		"How would you feel if your portfolio dropped 20% overnight?",
		"risk profile: aggressive",
		"your risk  profile is high",
	} {
		got, ok := Classify(text)
		assert.False(t, ok, text)
		assert.Equal(t, Unknown, got)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// an utterance naming several tiers resolves by rule order, not position
	got, ok := Classify("Earlier your risk profile is high, but now your risk profile is low.")
	require.True(t, ok)
	assert.Equal(t, Conservative, got)

	got, _ = Classify("risk profile is aggressive... no wait, risk profile is balanced")
	assert.Equal(t, Balanced, got)
}

func TestProfileObserve(t *testing.T) {
	p := NewProfile()
	assert.Equal(t, Unknown, p.Tier())

	got, ok := p.Observe("Based on our chat, your risk profile is Balanced.")
	require.True(t, ok)
	assert.Equal(t, Balanced, got)
	assert.Equal(t, Balanced, p.Tier())

	_, ok = p.Observe("nice weather today")
	assert.False(t, ok)
	assert.Equal(t, Balanced, p.Tier(), "a miss must leave the tier unchanged")
}

func TestProfileReclassification(t *testing.T) {
	p := NewProfile()
	p.Set(Aggressive)

	got, ok := p.Observe("On reflection, your risk profile is conservative.")
	require.True(t, ok)
	assert.Equal(t, Conservative, got)
	assert.Equal(t, Conservative, p.Tier())

	p.Observe("your risk profile is high")
	assert.Equal(t, Aggressive, p.Tier())
}

func TestProfileConcurrentAccess(t *testing.T) {
	p := NewProfile()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Observe("your risk profile is balanced")
		}()
		go func() {
			defer wg.Done()
			_ = p.Tier()
		}()
	}
	wg.Wait()
	assert.Equal(t, Balanced, p.Tier())
}

func TestParseTier(t *testing.T) {
	cases := map[string]Tier{
		"Unknown":      Unknown,
		"conservative": Conservative,
		"LOW":          Conservative,
		"Balanced":     Balanced,
		"moderate":     Balanced,
		" aggressive ": Aggressive,
		"high":         Aggressive,
	}
	for in, want := range cases {
		got, err := ParseTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTier("reckless")
	assert.Error(t, err)
}

func TestTierJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Tier Tier `json:"tier"`
	}{Balanced})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"Balanced"}`, string(b))

	var out struct {
		Tier Tier `json:"tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"high"}`), &out))
	assert.Equal(t, Aggressive, out.Tier)

	assert.Error(t, json.Unmarshal([]byte(`{"tier":"sideways"}`), &out))
	assert.Equal(t, "Tier(9)", Tier(9).String())
}

func TestViews(t *testing.T) {
	assert.False(t, Allows(Unknown, ViewAdvisor))
	assert.True(t, Allows(Unknown, ViewCalculators))
	for _, tier := range []Tier{Conservative, Balanced, Aggressive} {
		assert.True(t, Allows(tier, ViewAdvisor))
		assert.Equal(t, "Re-evaluate Profile", CallToAction(tier))
	}
	assert.Equal(t, "Analyze Risk Now", CallToAction(Unknown))
	assert.Len(t, Views(Unknown), 5)
	assert.Len(t, Views(Balanced), 6)
}
