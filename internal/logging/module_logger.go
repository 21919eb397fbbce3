package logging

import (
	"context"
	"strings"

	"github.com/neatous/go-translatable/pkg/interfaces"
)

const (
	rootModule     = "translatable"
	metadataModule = "translatable.metadata"
	resolveModule  = "translatable.resolve"
	storeModule    = "translatable.store"
)

const (
	fieldEntityType = "entity_type"
	fieldLocale     = "locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MetadataLogger returns the logger namespace reserved for schema derivation.
func MetadataLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, metadataModule)
}

// ResolveLogger returns the logger namespace reserved for translation
// resolution and staging.
func ResolveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolveModule)
}

// StoreLogger returns the logger namespace reserved for the bun-backed store.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// WithEntityContext enriches the provided logger with the entity type and
// locale involved in an operation. Empty values are ignored.
func WithEntityContext(logger interfaces.Logger, entityType, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entityType); trimmed != "" {
		fields[fieldEntityType] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
