package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/rook-computer/framerelay/internal/assets"
)

// NewRouter builds the relay's routes:
// - /healthcheck and /test-frame for manual checks
// - /api/v1/* for the API
// - / for the web UI
func NewRouter(staticDir string, deps APIV1Deps) *mux.Router {
	deps = deps.withDefaults()
	upgrader := newUpgrader(deps.DevMode)

	r := mux.NewRouter()
	r.Use(withRequestID, withAccessLog(deps.Logger))
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	r.MethodNotAllowedHandler = methodNotAllowed

	with := func(h func(http.ResponseWriter, *http.Request, APIV1Deps)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { h(w, r, deps) }
	}

	r.HandleFunc("/healthcheck", with(handleHealth)).Methods(http.MethodGet)
	r.HandleFunc("/test-frame", with(handleTestFrame)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/frame", with(handleGetFrame)).Methods(http.MethodGet)
	api.HandleFunc("/frame", with(handleSaveFrame)).Methods(http.MethodPost)
	api.HandleFunc("/frame.png", with(handleFramePreview)).Methods(http.MethodGet)
	api.HandleFunc("/frame/ws", func(w http.ResponseWriter, r *http.Request) {
		handleFrameFeed(w, r, deps, upgrader)
	}).Methods(http.MethodGet)
	api.HandleFunc("/download-client", with(handleDownloadClient)).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/download-client/qr.png", with(handleClientQRCode)).Methods(http.MethodGet)
	// Subrouters do not inherit these from the parent.
	api.MethodNotAllowedHandler = methodNotAllowed
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})

	r.PathPrefix("/").Handler(StaticUIHandler(staticDir)).Methods(http.MethodGet, http.MethodHead)
	return r
}

// StaticUIHandler serves staticDir, or the embedded UI when staticDir is empty.
func StaticUIHandler(staticDir string) http.Handler {
	if staticDir == "" {
		return cleanPath(http.FileServer(http.FS(assets.WebUI)))
	}
	if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	return cleanPath(http.FileServer(http.Dir(staticDir)))
}

// cleanPath keeps parent directory traversal out of the file server.
func cleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
