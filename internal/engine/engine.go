package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"easywealth/internal/calculations"
	"easywealth/internal/jsonpatch"
	"easywealth/internal/model"
	"easywealth/internal/platform/logger"
)

// Engine runs calculation instructions against a workspace situation
type Engine struct {
	registry *calculations.Registry
	now      func() time.Time
}

func New(registry *calculations.Registry) *Engine {
	return &Engine{registry: registry, now: time.Now}
}

// Process applies the instructions in order to a copy of initial. It stops
// at the first CRITICAL message; the end situation is the state after the
// last instruction that applied cleanly; its index is -1 when none did.
func (e *Engine) Process(sessionID string, initial model.Situation, req *model.CalculationRequest) *model.CalculationResponse {
	start := e.now()
	instructions := req.CalculationInstructions.Instructions

	state := initial.Clone()

	var allMessages []model.CalculationMessage
	var processed []model.ProcessedInstruction
	outcome := model.OutcomeSuccess

	var lastID, lastActualAt string
	lastIndex := -1

	record := func(msgs []model.CalculationMessage, indexes []int) ([]int, bool) {
		hasCritical := false
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			indexes = append(indexes, m.ID)
			if m.Level == model.LevelCritical {
				hasCritical = true
			}
		}
		return indexes, hasCritical
	}

	for i := range instructions {
		ins := instructions[i]

		handler, ok := e.registry.Get(ins.InstructionName)
		if !ok {
			idx, _ := record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    "UNKNOWN_INSTRUCTION",
				Message: fmt.Sprintf("Unknown instruction: %s (known: %s)", ins.InstructionName, strings.Join(e.registry.Names(), ", ")),
			}}, nil)
			processed = append(processed, model.ProcessedInstruction{Instruction: ins, CalculationMessageIndexes: idx})
			outcome = model.OutcomeFailure
			break
		}

		idx, failed := record(handler.Validate(&state, &ins), nil)
		if failed {
			processed = append(processed, model.ProcessedInstruction{Instruction: ins, CalculationMessageIndexes: idx})
			outcome = model.OutcomeFailure
			break
		}

		// apply to a scratch copy so a failing instruction leaves no trace
		next := state.Clone()
		idx, failed = record(handler.Apply(&next, &ins), idx)
		processed = append(processed, model.ProcessedInstruction{Instruction: ins, CalculationMessageIndexes: idx})
		if failed {
			outcome = model.OutcomeFailure
			break
		}

		state = next
		lastID = ins.InstructionID
		lastIndex = i
		lastActualAt = ins.ActualAt
	}

	patch := e.patch(initial, state)

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	completed := e.now()
	elapsed := completed.Sub(start)

	firstActualAt := ""
	if len(instructions) > 0 {
		firstActualAt = instructions[0].ActualAt
	}

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			SessionID:              sessionID,
			CalculationStartedAt:   start.UTC().Format(time.RFC3339Nano),
			CalculationCompletedAt: completed.UTC().Format(time.RFC3339Nano),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Instructions: processed,
			EndSituation: model.SituationEnvelope{
				InstructionID:    lastID,
				InstructionIndex: lastIndex,
				ActualAt:         lastActualAt,
				Situation:        state,
			},
			InitialSituation: model.InitialSituation{
				ActualAt:  firstActualAt,
				Situation: initial,
			},
			SituationPatch: patch,
		},
	}
}

func (e *Engine) patch(from, to model.Situation) []byte {
	ops, err := jsonpatch.Between(from, to)
	if err == nil {
		var raw []byte
		if raw, err = jsonpatch.Marshal(ops); err == nil {
			return raw
		}
	}
	logger.Named("engine").Error().Err(err).Msg("situation patch failed")
	return []byte("[]")
}
