// Package http provides the optional HTTP adapter for site generation.
//
// Routes mount under a configurable base path (default /api):
//   - POST {base}/sites/{id}/generate: render and write the bundle, returning the build result
//   - GET  {base}/sites/{id}/download: stream the bundle as a zip attachment
//   - GET  {base}/sites/{id}/preview/{file...}: serve files of a generated bundle
//
// Host applications register the handlers on their own mux.
package http
