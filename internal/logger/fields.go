package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldScreening is the structured log field key for a screening batch ID.
	FieldScreening = "screening_id"
	// FieldStrategy is the structured log field key for the scoring strategy.
	FieldStrategy = "strategy"
	// FieldFile is the structured log field key for an uploaded file name.
	FieldFile = "file"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithScreening tags logger with the batch ID and strategy name.
func WithScreening(logger *zap.Logger, id, strategy string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldScreening, Value: id},
		StringField{Key: FieldStrategy, Value: strategy},
	)...)
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when cut.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
