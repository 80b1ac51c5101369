package bootstrap

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitegen"
	sitescmd "github.com/goliatone/go-sitegen/internal/commands/sites"
)

func TestBuildModuleAppliesOptions(t *testing.T) {
	root := t.TempDir()
	resources, err := BuildModule(Options{
		OutputRoot:     root,
		LogLevel:       "error",
		EnableCommands: true,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { _ = resources.Close() })

	if resources.Module == nil {
		t.Fatal("expected module")
	}
	if got := resources.Module.Container().Config.Output.Root; got != root {
		t.Fatalf("expected output root %s, got %s", root, got)
	}

	handlers := resources.Collector.Handlers()
	if len(handlers) != 3 {
		t.Fatalf("expected three collected handlers, got %d", len(handlers))
	}
	if _, ok := handlers[0].(*sitescmd.GenerateSiteHandler); !ok {
		t.Fatalf("expected generate handler first, got %T", handlers[0])
	}
}

func TestBuildModuleWithoutCommands(t *testing.T) {
	resources, err := BuildModule(Options{OutputRoot: t.TempDir(), LogLevel: "error"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { _ = resources.Close() })

	if resources.Collector != nil {
		t.Fatal("expected no collector when commands are disabled")
	}
}

func TestBuildModuleRejectsInvalidConfig(t *testing.T) {
	_, err := BuildModule(Options{OutputRoot: t.TempDir(), StorageDriver: "mongo"})
	if !errors.Is(err, sitegen.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
