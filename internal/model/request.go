package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Instructions []Instruction `json:"instructions" validate:"required,min=1,dive"`
}

type Instruction struct {
	InstructionID   string          `json:"instruction_id" validate:"required"`
	InstructionName string          `json:"instruction_name" validate:"required"`
	ActualAt        string          `json:"actual_at" validate:"omitempty,datetime=2006-01-02"`
	Properties      json.RawMessage `json:"properties"`
}
