package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by capability adapters.
const (
	FieldCapability = "capability"
	FieldProvider   = "provider"
	FieldModel      = "model"
)

// ProviderFields returns fields naming a capability provider and model.
// Empty values are omitted.
func ProviderFields(capability, provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	for _, kv := range [][2]string{
		{FieldCapability, capability},
		{FieldProvider, provider},
		{FieldModel, model},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			fields = append(fields, zap.String(kv[0], v))
		}
	}
	return fields
}

// With returns the process logger with fields attached.
func With(fields ...zap.Field) *zap.Logger {
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
