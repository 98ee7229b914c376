// internal/api/validator.go
package api

import (
	stderrors "mentorlink-engine/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// rankRequestSchema constrains the rank payload before it reaches the engine.
// The engine itself treats criteria fields as trusted value types.
const rankRequestSchema = `{
	"type": "object",
	"required": ["criteria"],
	"properties": {
		"limit": {"type": "integer", "minimum": 0},
		"criteria": {
			"type": "object",
			"required": ["studentId"],
			"properties": {
				"studentId": {"type": "string", "minLength": 1},
				"studentNeeds": {"type": "array", "items": {"type": "string"}},
				"urgency": {"type": "string", "enum": ["low", "medium", "high"]},
				"preferredMode": {"type": "string", "enum": ["chat", "call", "video"]},
				"studentLevel": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]},
				"preferredDays": {"type": "array", "items": {"type": "string"}},
				"preferredTimeSlots": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["start", "end"],
						"properties": {
							"start": {"type": "string"},
							"end": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`

type requestValidator struct {
	rankSchema *gojsonschema.Schema
}

func newRequestValidator() *requestValidator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(rankRequestSchema))
	if err != nil {
		// The schema is a compile-time constant; a parse failure is a bug.
		panic("invalid rank request schema: " + err.Error())
	}
	return &requestValidator{rankSchema: schema}
}

// validateRankRequest checks the raw payload against the rank schema.
func (v *requestValidator) validateRankRequest(payload []byte) error {
	result, err := v.rankSchema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return stderrors.NewInvalidRequestError("malformed JSON body: " + err.Error())
	}

	if !result.Valid() {
		violations := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			violations[i] = desc.String()
		}
		return stderrors.NewValidationError("rank request failed schema validation", violations)
	}

	return nil
}
