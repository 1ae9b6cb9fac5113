package transport

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"

	"portfolio-server/internal/errors"
	"portfolio-server/internal/models"
	"portfolio-server/internal/service"

	"github.com/dustin/go-humanize"
)

// ListDirPath is the only API route. Everything else is static content.
const ListDirPath = "/api/listdir"

// responseHeaders are set on every response, whatever its status.
var responseHeaders = [][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "Content-Type"},
	{"Cache-Control", "no-cache, no-store, must-revalidate"},
	{"Pragma", "no-cache"},
	{"Expires", "0"},
}

// Router dispatches requests between the listing API and a static file handler.
type Router struct {
	service service.ListingService
	static  http.Handler
	logger  *log.Logger
}

// NewRouter creates a Router. static serves every GET that is not the listing
// API; it is expected to be scoped to the same root as svc.
func NewRouter(svc service.ListingService, static http.Handler) *Router {
	if svc == nil {
		log.Printf("Warning: ListingService is nil in NewRouter")
	}
	return &Router{
		service: svc,
		static:  static,
		logger:  log.Default(),
	}
}

// NewStaticHandler returns the file server used for non-API paths.
func NewStaticHandler(rootDir string) http.Handler {
	return http.FileServer(http.Dir(rootDir))
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w}
	defer rt.logRequest(r, rec)

	rt.dispatch(rec, r)
	if rec.status == 0 {
		rec.WriteHeader(http.StatusOK)
	}
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		// CORS preflight: headers only, empty body.
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		if r.Method == http.MethodGet && r.URL.Path == ListDirPath {
			rt.handleListDir(w, r)
			return
		}
		rt.static.ServeHTTP(w, r)
	default:
		http.Error(w, fmt.Sprintf("Unsupported method (%q)", r.Method), http.StatusNotImplemented)
	}
}

func (rt *Router) handleListDir(w http.ResponseWriter, r *http.Request) {
	req := models.ListDirRequest{Path: queryValue(r.URL.RawQuery, "path")}

	resp, errDetail := rt.service.ListDir(req)
	if errDetail != nil {
		http.Error(w, errDetail.Message, errors.MapErrorToHTTPStatus(errDetail.Kind))
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		rt.logger.Printf("Error writing listing response: %v", err)
	}
}

func (rt *Router) logRequest(r *http.Request, rec *statusRecorder) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	rt.logger.Printf("  [REQUEST] %s - %q %d %s",
		host, r.Method+" "+r.URL.RequestURI(), rec.Status(), humanize.Bytes(uint64(rec.written)))
}

// statusRecorder applies the shared response headers at the moment the status
// line goes out, and remembers status and body size for the request log.
// Applying headers late keeps them even when the wrapped handler clears
// caching headers on its error path.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status != 0 {
		return
	}
	s.status = code
	h := s.ResponseWriter.Header()
	for _, kv := range responseHeaders {
		h.Set(kv[0], kv[1])
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

// Status returns the status code sent, 200 if the handler never wrote one.
func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
