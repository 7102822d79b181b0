package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easywealth/internal/advisor"
	"easywealth/internal/risk"
)

func TestMockConcludesProfile(t *testing.T) {
	cases := []struct {
		name    string
		answers []string
		want    risk.Tier
	}{
		{"cautious", []string{"I'd panic and sell", "yes, stability", "take profits, I'm nervous", "ok"}, risk.Conservative},
		{"bold", []string{"I'd buy more", "growth please", "add more", "sure"}, risk.Aggressive},
		{"neutral", []string{"hmm", "depends", "not sure", "ok"}, risk.Balanced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := NewMock().StartConversation(context.Background(), advisor.AssessmentInstruction)
			require.NoError(t, err)

			var last string
			for i, a := range tc.answers {
				last, err = conv.Send(context.Background(), a)
				require.NoError(t, err)
				if i < len(mockQuestions) {
					assert.Equal(t, mockQuestions[i], last)
				}
			}
			got, ok := risk.Classify(last)
			require.True(t, ok, "final reply should state a profile: %q", last)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMockAdviceFollowsTier(t *testing.T) {
	out, err := NewMock().RequestAdvice(context.Background(), advisor.AdviceRequest{Tier: risk.Aggressive, Goals: "retire", Savings: "1L"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "75% Equity"), out)
}

func TestScriptedReplaysInOrder(t *testing.T) {
	boom := errors.New("boom")
	s := NewScripted(Reply{Text: "one"}, Reply{Err: boom})
	conv, err := s.StartConversation(context.Background(), "sys")
	require.NoError(t, err)

	got, err := conv.Send(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	_, err = conv.Send(context.Background(), "b")
	assert.ErrorIs(t, err, boom)

	_, err = conv.Send(context.Background(), "c")
	assert.Error(t, err, "exhausted script must fail")

	assert.Equal(t, []string{"a", "b", "c"}, s.Sent)
	assert.Equal(t, []string{"sys"}, s.Instructions)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.Error(t, err)
}
