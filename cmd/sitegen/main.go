package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-sitegen"
	"github.com/goliatone/go-sitegen/commands/bootstrap"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	stdout        io.Writer = os.Stdout
)

const usage = `usage: sitegen <command> [flags]

commands:
  generate  load a site document and write its bundle
  pack      zip a generated bundle
  clean     remove a generated bundle
  serve     expose the generate, download and preview endpoints`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("sitegen: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "generate":
		return runGenerate(args[1:])
	case "pack":
		return runPack(args[1:])
	case "clean":
		return runClean(args[1:])
	case "serve":
		return runServe(args[1:])
	case "-h", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type commonFlags struct {
	out       *string
	driver    *string
	dsn       *string
	logLevel  *string
	logFormat *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		out:       fs.String("out", "generated-websites", "Root directory bundles are written under"),
		driver:    fs.String("db", "memory", "Aggregate storage driver (memory, sqlite3, postgres)"),
		dsn:       fs.String("dsn", "", "Database DSN for sqlite3 or postgres"),
		logLevel:  fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)"),
		logFormat: fs.String("log-format", "console", "Log format (json, console, pretty)"),
	}
}

func (c commonFlags) options() bootstrap.Options {
	return bootstrap.Options{
		OutputRoot:    *c.out,
		StorageDriver: *c.driver,
		StorageDSN:    *c.dsn,
		LogLevel:      *c.logLevel,
		LogFormat:     *c.logFormat,
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("sitegen-generate", flag.ContinueOnError)
	common := registerCommon(fs)
	input := fs.String("input", "", "Site document (.json, .yaml or .yml)")
	pagesDir := fs.String("pages", "", "Directory of page files with frontmatter")
	dryRun := fs.Bool("dry-run", false, "Render without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" {
		return errors.New("-input is required")
	}

	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer resources.Close()

	ctx := context.Background()
	agg, err := resources.Module.Import(ctx, sitegen.SourceOptions{Input: *input, PagesDir: *pagesDir})
	if err != nil {
		return fmt.Errorf("import %s: %w", *input, err)
	}

	var result *sitegen.BuildResult
	if *dryRun {
		result, err = resources.Module.DryRun(ctx, agg.ID)
	} else {
		result, err = resources.Module.Generate(ctx, agg.ID)
	}
	if err != nil {
		return fmt.Errorf("generate %s: %w", agg.ID, err)
	}
	return printJSON(result)
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("sitegen-pack", flag.ContinueOnError)
	common := registerCommon(fs)
	siteID := fs.String("site", "", "Identifier of the generated site")
	output := fs.String("o", "", "Archive path (defaults to <site>.zip)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*siteID) == "" {
		return errors.New("-site is required")
	}
	target := *output
	if target == "" {
		target = *siteID + ".zip"
	}

	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer resources.Close()

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(target)
	if err != nil {
		return err
	}

	packErr := resources.Module.Pack(context.Background(), *siteID, file)
	closeErr := file.Close()
	if packErr != nil {
		_ = os.Remove(target)
		return fmt.Errorf("pack %s: %w", *siteID, packErr)
	}
	if closeErr != nil {
		return closeErr
	}
	fmt.Fprintln(stdout, target)
	return nil
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("sitegen-clean", flag.ContinueOnError)
	common := registerCommon(fs)
	siteID := fs.String("site", "", "Identifier of the generated site")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*siteID) == "" {
		return errors.New("-site is required")
	}

	resources, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer resources.Close()

	if err := resources.Module.Clean(context.Background(), *siteID); err != nil {
		return fmt.Errorf("clean %s: %w", *siteID, err)
	}
	fmt.Fprintf(stdout, "removed %s\n", *siteID)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("sitegen-serve", flag.ContinueOnError)
	common := registerCommon(fs)
	addr := fs.String("addr", ":8080", "Listen address")
	basePath := fs.String("base-path", "/api", "Base path of the site endpoints")
	input := fs.String("input", "", "Optional site document imported before serving")
	pagesDir := fs.String("pages", "", "Directory of page files for -input")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := common.options()
	opts.BasePath = *basePath
	resources, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer resources.Close()

	server, err := newServer(context.Background(), resources.Module, *addr, *input, *pagesDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func newServer(ctx context.Context, module *sitegen.Module, addr, input, pagesDir string) (*http.Server, error) {
	if strings.TrimSpace(input) != "" {
		if _, err := module.Import(ctx, sitegen.SourceOptions{Input: input, PagesDir: pagesDir}); err != nil {
			return nil, fmt.Errorf("import %s: %w", input, err)
		}
	}
	handler, err := module.Handler()
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", data)
	return err
}
