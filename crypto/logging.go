package crypto

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoggerHelper carries the standard fields for one crypto operation.
type LoggerHelper struct {
	base   logrus.FieldLogger
	fields logrus.Fields
}

// NewLogger creates a logger helper for function using the standard logger.
func NewLogger(function string) *LoggerHelper {
	return NewLoggerWith(logrus.StandardLogger(), function)
}

// NewLoggerWith creates a logger helper writing to base.
func NewLoggerWith(base logrus.FieldLogger, function string) *LoggerHelper {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &LoggerHelper{
		base: base,
		fields: logrus.Fields{
			"function": function,
			"package":  "crypto",
		},
	}
}

// WithField adds a custom field to the logger
func (l *LoggerHelper) WithField(key string, value interface{}) *LoggerHelper {
	l.fields[key] = value
	return l
}

// WithFields adds multiple custom fields to the logger
func (l *LoggerHelper) WithFields(fields logrus.Fields) *LoggerHelper {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithError adds error information to the logger
func (l *LoggerHelper) WithError(err error, operation string) *LoggerHelper {
	l.fields["error"] = err.Error()
	l.fields["operation"] = operation
	return l
}

func (l *LoggerHelper) entry() *logrus.Entry {
	return l.base.WithFields(l.fields)
}

// Entry logs function entry
func (l *LoggerHelper) Entry(message string) {
	l.entry().Debug(fmt.Sprintf("Function entry: %s", message))
}

// Debug logs a debug message
func (l *LoggerHelper) Debug(message string) {
	l.entry().Debug(message)
}

// Info logs an info message
func (l *LoggerHelper) Info(message string) {
	l.entry().Info(message)
}

// Warn logs a warning message
func (l *LoggerHelper) Warn(message string) {
	l.entry().Warn(message)
}

// Error logs an error message
func (l *LoggerHelper) Error(message string) {
	l.entry().Error(message)
}

// SecureFieldHash creates a preview of sensitive data for logging.
// Only the first 8 bytes are rendered.
func SecureFieldHash(data []byte, name string) logrus.Fields {
	preview := "nil"
	if len(data) > 0 {
		previewLen := 8
		if len(data) < previewLen {
			previewLen = len(data)
		}
		preview = fmt.Sprintf("%x", data[:previewLen])
		if len(data) > previewLen {
			preview += "..."
		}
	}

	return logrus.Fields{
		name + "_preview": preview,
		name + "_size":    len(data),
	}
}

// OperationFields creates standardized operation logging fields
func OperationFields(operation, status string, additional ...logrus.Fields) logrus.Fields {
	fields := logrus.Fields{
		"operation": operation,
		"status":    status,
	}

	for _, extra := range additional {
		for k, v := range extra {
			fields[k] = v
		}
	}

	return fields
}
