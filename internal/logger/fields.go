package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidateID is the structured log field key for a candidate id.
	FieldCandidateID = "candidate_id"
	// FieldCandidateName is the structured log field key for a candidate name.
	FieldCandidateName = "candidate_name"
	// FieldItemID is the structured log field key for an outreach item id.
	FieldItemID = "item_id"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes a candidate in log entries.
func CandidateFields(id, name string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: id},
		StringField{Key: FieldCandidateName, Value: name},
	)
}

// AIFields describes the AI provider and model. Empty values are ignored.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
