// Package session holds per-user workspaces in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"easywealth/internal/model"
	"easywealth/internal/risk"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// Greeting opens every risk chat transcript
const Greeting = "Hi! I'm your EasyWealth financial companion. To help you best, I need to understand how you handle money and risk. Ready for a quick chat?"

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Workspace is everything one user has open: the calculator/budget
// situation, the risk tier cell and the risk chat transcript.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	// Profile is the tier cell; Profile.Set is the only write path
	Profile *risk.Profile

	turn sync.Mutex // serializes chat turns so replies classify in receipt order

	mu         sync.RWMutex
	situation  model.Situation
	transcript []ChatMessage
	now        func() time.Time
}

func newWorkspace(now func() time.Time) *Workspace {
	created := now()
	return &Workspace{
		ID:        uuid.NewString(),
		CreatedAt: created,
		Profile:   risk.NewProfile(),
		situation: model.NewSituation(),
		transcript: []ChatMessage{{
			ID:        uuid.NewString(),
			Role:      RoleSystem,
			Text:      Greeting,
			Timestamp: created,
		}},
		now: now,
	}
}

// Situation returns a copy of the current situation
func (w *Workspace) Situation() model.Situation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.situation.Clone()
}

// Calculate runs fn against the current situation under the write lock and
// stores its result when commit is true.
func (w *Workspace) Calculate(fn func(current model.Situation) (next model.Situation, commit bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, commit := fn(w.situation.Clone())
	if commit {
		w.situation = next
	}
}

// Append adds a message to the transcript and returns it
func (w *Workspace) Append(role Role, text string) ChatMessage {
	msg := ChatMessage{ID: uuid.NewString(), Role: role, Text: text, Timestamp: w.now()}
	w.mu.Lock()
	w.transcript = append(w.transcript, msg)
	w.mu.Unlock()
	return msg
}

// Transcript returns a copy of the chat so far
func (w *Workspace) Transcript() []ChatMessage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]ChatMessage(nil), w.transcript...)
}

// InTurn runs fn while holding the workspace's chat turn
func (w *Workspace) InTurn(fn func()) {
	w.turn.Lock()
	defer w.turn.Unlock()
	fn()
}
