package logging

import (
	"context"
	"testing"

	"github.com/neatous/go-translatable/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

// plainLogger satisfies Logger without the FieldsLogger extension.
type plainLogger struct{}

func (plainLogger) Trace(string, ...any) {}
func (plainLogger) Debug(string, ...any) {}
func (plainLogger) Info(string, ...any)  {}
func (plainLogger) Warn(string, ...any)  {}
func (plainLogger) Error(string, ...any) {}
func (plainLogger) Fatal(string, ...any) {}

func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "translatable.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure chained calls do not panic.
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, metadataModule)

	if len(provider.requested) != 1 || provider.requested[0] != metadataModule {
		t.Fatalf("expected module %s, got %v", metadataModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got, ok := rec.fields[0]["module"]; !ok || got != metadataModule {
		t.Fatalf("expected module field %s, got %v", metadataModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestModuleLoggerToleratesPlainLogger(t *testing.T) {
	provider := &stubProvider{logger: plainLogger{}}

	logger := ModuleLogger(provider, resolveModule)
	if logger == nil {
		t.Fatal("expected logger")
	}
	// No FieldsLogger support means the provider logger comes back as-is.
	if _, ok := logger.(plainLogger); !ok {
		t.Fatalf("expected plain logger passthrough, got %T", logger)
	}
}

func TestScopedLoggersRequestTheirModules(t *testing.T) {
	cases := []struct {
		make func(interfaces.LoggerProvider) interfaces.Logger
		want string
	}{
		{MetadataLogger, metadataModule},
		{ResolveLogger, resolveModule},
		{StoreLogger, storeModule},
	}

	for _, tc := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = tc.make(provider)
		if len(provider.requested) == 0 || provider.requested[0] != tc.want {
			t.Fatalf("expected %s request, got %v", tc.want, provider.requested)
		}
	}
}

func TestWithEntityContextAttachesNonEmptyFields(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithEntityContext(rec, "Document", "de")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields application, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldEntityType] != "Document" || rec.fields[0][fieldLocale] != "de" {
		t.Fatalf("unexpected fields %v", rec.fields[0])
	}

	rec = &recordingLogger{}
	_ = WithEntityContext(rec, "  ", "")
	if len(rec.fields) != 0 {
		t.Fatalf("expected empty values to be skipped, got %v", rec.fields)
	}
}
