// Package httpui serves the embedded front-end. The root path redirects to
// the bundle's index page; everything under /static/ is served directly.
package httpui

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/mergington-hs/activities/web"
)

func Register(mux *http.ServeMux) error {
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("embed static: %w", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("GET /{$}", redirectIndex)
	return nil
}

// redirectIndex sends browsers hitting the root to the front-end. The 307
// status and exact location are part of the public contract.
func redirectIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}
