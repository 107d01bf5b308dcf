package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Varun5711/recipebook/internal/metrics"
	"github.com/gorilla/mux"
)

// Instrument records request counts and latency labelled by the matched
// route template, so /api/recipe/1 and /api/recipe/2 share a series.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		done := metrics.TrackInFlight()
		defer done()

		rec := newStatusRecorder(w)
		start := time.Now()

		next.ServeHTTP(rec, r)

		metrics.ObserveRequest(strings.ToUpper(r.Method), routeTemplate(r), rec.status, time.Since(start))
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return ""
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return ""
	}
	return template
}
