package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
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

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "sitegen.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, bundleModule)

	if len(provider.requested) != 1 || provider.requested[0] != bundleModule {
		t.Fatalf("expected module %s, got %v", bundleModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != bundleModule {
		t.Fatalf("expected module field %s, got %v", bundleModule, got)
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
}

func TestArchiveLoggerRequestsArchiveModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ArchiveLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != archiveModule {
		t.Fatalf("expected archive module request, got %v", provider.requested)
	}
}

func TestWithSiteSkipsBlankIdentifiers(t *testing.T) {
	rec := &recordingLogger{}
	WithSite(rec, "  ")
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields for blank site id, got %v", rec.fields)
	}
	WithSite(rec, "acme")
	if len(rec.fields) != 1 || rec.fields[0][fieldSiteID] != "acme" {
		t.Fatalf("expected site_id field, got %v", rec.fields)
	}
}

func TestContextFieldsMergeAndFromContext(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r1"})
	ctx = ContextWithFields(ctx, map[string]any{"site_id": "acme"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "r1" || fields["site_id"] != "acme" {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	rec := &recordingLogger{}
	FromContext(ctx, rec)
	if len(rec.fields) != 1 || len(rec.contexts) != 1 {
		t.Fatalf("expected fields and context to be bound, got %v / %d", rec.fields, len(rec.contexts))
	}
}
