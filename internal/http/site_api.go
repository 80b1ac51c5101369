package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-sitegen/internal/archive"
	"github.com/goliatone/go-sitegen/internal/bundle"
	sitescmd "github.com/goliatone/go-sitegen/internal/commands/sites"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// GenerateExecutor runs a generate command.
type GenerateExecutor interface {
	Execute(ctx context.Context, msg sitescmd.GenerateSiteCommand) error
}

// BundlePackager streams bundle archives.
type BundlePackager interface {
	Exists(siteID string) bool
	Pack(ctx context.Context, siteID string, w io.Writer) error
}

// SiteAPI registers the generation, download and preview endpoints.
type SiteAPI struct {
	basePath    string
	source      sitescmd.AggregateSource
	generate    GenerateExecutor
	packager    BundlePackager
	previewRoot string
	logger      interfaces.Logger
}

// SiteOption mutates the SiteAPI configuration.
type SiteOption func(*SiteAPI)

// NewSiteAPI constructs a SiteAPI instance.
func NewSiteAPI(opts ...SiteOption) *SiteAPI {
	api := &SiteAPI{
		basePath: "/api",
		logger:   logging.HTTPLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) SiteOption {
	return func(api *SiteAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithAggregateSource wires the persistence collaborator used for download names.
func WithAggregateSource(source sitescmd.AggregateSource) SiteOption {
	return func(api *SiteAPI) {
		api.source = source
	}
}

// WithGenerateHandler wires the generate command handler.
func WithGenerateHandler(handler GenerateExecutor) SiteOption {
	return func(api *SiteAPI) {
		api.generate = handler
	}
}

// WithPackager wires the archive packager.
func WithPackager(packager BundlePackager) SiteOption {
	return func(api *SiteAPI) {
		api.packager = packager
	}
}

// WithPreviewRoot enables the preview route, serving bundles under root.
func WithPreviewRoot(root string) SiteOption {
	return func(api *SiteAPI) {
		api.previewRoot = strings.TrimSpace(root)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) SiteOption {
	return func(api *SiteAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the site endpoints to mux.
func (api *SiteAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: site api is nil")
	}

	root := joinPath(api.basePath, "sites")
	mux.HandleFunc("POST "+root+"/{id}/generate", api.handleGenerate)
	mux.HandleFunc("GET "+root+"/{id}/download", api.handleDownload)
	if api.previewRoot != "" {
		mux.HandleFunc("GET "+root+"/{id}/preview/{file...}", api.handlePreview)
	}
	return nil
}

type generateResponse struct {
	*bundle.Result
	PreviewURL string `json:"preview_url,omitempty"`
}

func (api *SiteAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if api.generate == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	siteID := r.PathValue("id")

	var result *bundle.Result
	err := api.generate.Execute(r.Context(), sitescmd.GenerateSiteCommand{
		SiteID:         siteID,
		DryRun:         parseBoolQuery(r.URL.Query().Get("dry_run"), false),
		ResultCallback: func(res *bundle.Result) { result = res },
	})
	if err != nil {
		api.requestLogger(r, siteID).Error("http.generate.failed", "error", err)
		writeError(w, err)
		return
	}

	resp := generateResponse{Result: result}
	if api.previewRoot != "" {
		resp.PreviewURL = joinPath(api.basePath, path.Join("sites", siteID, "preview", "index.html"))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *SiteAPI) handleDownload(w http.ResponseWriter, r *http.Request) {
	if api.packager == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	siteID := r.PathValue("id")
	logger := api.requestLogger(r, siteID)

	name := archive.DownloadName("")
	if api.source != nil {
		agg, err := api.source.GetAggregate(r.Context(), siteID)
		if err != nil {
			writeError(w, err)
			return
		}
		name = archive.DownloadName(agg.CompanyOrEmpty().Name)
	}

	if !api.packager.Exists(siteID) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "website files not found"})
		return
	}

	w.Header().Set("Content-Type", archive.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if err := api.packager.Pack(r.Context(), siteID, w); err != nil {
		logger.Error("http.download.failed", "error", err)
		return
	}
	logger.Info("http.download.success", "filename", name)
}

func (api *SiteAPI) handlePreview(w http.ResponseWriter, r *http.Request) {
	siteID := r.PathValue("id")
	if err := site.ValidateSiteID(siteID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "website files not found"})
		return
	}
	file := strings.TrimSpace(r.PathValue("file"))
	if file == "" {
		file = "index.html"
	}
	clean := path.Clean("/" + file)

	f, err := os.Open(filepath.Join(api.previewRoot, siteID, filepath.FromSlash(clean)))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "file not found"})
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "file not found"})
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (api *SiteAPI) requestLogger(r *http.Request, siteID string) interfaces.Logger {
	logger := logging.WithSite(api.logger, siteID)
	return logging.WithFields(logger, map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithContext(r.Context())
}
