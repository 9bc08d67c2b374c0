// Package web embeds the browser page served by the local generation backend.
//
// The page documents the backend's routes and provides a minimal player for
// previewing generated videos without leaving the browser.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// IndexHandler serves the embedded backend page at the root route.
type IndexHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *IndexHandler) Routes() []string {
	return []string{"/"}
}

// ServeHTTP writes the embedded page. The mux routes every unmatched path
// here, so anything but the root itself is a 404.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}
