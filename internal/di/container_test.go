package di_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	sitescmd "github.com/goliatone/go-sitegen/internal/commands/sites"
	"github.com/goliatone/go-sitegen/internal/di"
	"github.com/goliatone/go-sitegen/internal/runtimeconfig"
	"github.com/goliatone/go-sitegen/internal/websites"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
	"github.com/goliatone/go-sitegen/pkg/testsupport"
)

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) Info(msg string, _ ...any) {
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) WithFields(map[string]any) interfaces.Logger {
	return l
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

type singleLoggerProvider struct {
	logger interfaces.Logger
}

func (p *singleLoggerProvider) GetLogger(string) interfaces.Logger {
	return p.logger
}

func testConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Output.Root = t.TempDir()
	cfg.Logging.Provider = "noop"
	return cfg
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Output.Root = ""

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrOutputRootRequired) {
		t.Fatalf("expected ErrOutputRootRequired, got %v", err)
	}
}

func TestNewContainerDefaultsToMemoryRepository(t *testing.T) {
	container, err := di.NewContainer(testConfig(t))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.Repository().(*websites.MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", container.Repository())
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected noop logging to leave the provider unset")
	}
}

func TestNewContainerUsesBunRepositoryForSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = runtimeconfig.StorageDriverSQLite
	cfg.Storage.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if _, ok := container.Repository().(*websites.BunRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.Repository())
	}

	ctx := context.Background()
	if err := container.Repository().SaveAggregate(ctx, testsupport.SampleWebsite("acme")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := container.Repository().GetAggregate(ctx, "acme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Company == nil || got.Company.Name != "Acme" {
		t.Fatalf("unexpected aggregate %+v", got)
	}
}

func TestContainerGenerateAndPack(t *testing.T) {
	cfg := testConfig(t)
	logger := &recordingLogger{}
	repo := websites.NewMemoryRepository(testsupport.SampleWebsite("acme"))

	container, err := di.NewContainer(cfg,
		di.WithRepository(repo),
		di.WithLoggerProvider(&singleLoggerProvider{logger: logger}),
		di.WithNow(fixedNow),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	ctx := context.Background()
	if err := container.GenerateHandler().Execute(ctx, sitescmd.GenerateSiteCommand{SiteID: "acme"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(cfg.Output.Root, "acme", "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !bytes.Contains(index, []byte("© 2024 Acme")) {
		t.Fatal("expected footer year from injected clock")
	}

	var buf bytes.Buffer
	if err := container.PackHandler().Execute(ctx, sitescmd.PackSiteCommand{SiteID: "acme", Output: &buf}); err != nil {
		t.Fatalf("pack: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected archive bytes")
	}

	if len(logger.infos) == 0 {
		t.Fatal("expected injected logger provider to receive events")
	}
}

func TestContainerCleanRemovesBundle(t *testing.T) {
	cfg := testConfig(t)
	repo := websites.NewMemoryRepository(testsupport.SampleWebsite("acme"))

	container, err := di.NewContainer(cfg, di.WithRepository(repo))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	ctx := context.Background()
	if err := container.GenerateHandler().Execute(ctx, sitescmd.GenerateSiteCommand{SiteID: "acme"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := container.CleanHandler().Execute(ctx, sitescmd.CleanSiteCommand{SiteID: "acme"}); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if container.Packager().Exists("acme") {
		t.Fatal("expected bundle directory to be removed")
	}
}
