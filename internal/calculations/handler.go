package calculations

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"easywealth/internal/model"
)

// Handler defines the contract for every calculation instruction.
// Validate inspects the situation without touching it; Apply mutates it.
type Handler interface {
	Validate(state *model.Situation, ins *model.Instruction) []model.CalculationMessage
	Apply(state *model.Situation, ins *model.Instruction) []model.CalculationMessage
}

func critical(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelCritical, Code: code, Message: fmt.Sprintf(format, args...)}
}

func warning(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// decodeProps strictly decodes instruction properties into v
func decodeProps(ins *model.Instruction, v any) error {
	raw := bytes.TrimSpace(ins.Properties)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func invalidProps(err error) []model.CalculationMessage {
	return []model.CalculationMessage{critical("INVALID_PROPERTIES", "Instruction properties are invalid: %v", err)}
}

// fieldCode turns "annual_rate_percent" + "OUTSIDE_RANGE" into ANNUAL_RATE_PERCENT_OUTSIDE_RANGE
func fieldCode(field, code string) string {
	return strings.ToUpper(field) + "_" + code
}
