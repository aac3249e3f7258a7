// Package web embeds the static frontend assets so the binary is
// self-contained.
package web

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded frontend under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
