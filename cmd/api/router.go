// cmd/api/router.go
// HTTP routing and middleware for the matchmaker API

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/activity"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/database"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/utils"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/matching"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

const requestIDHeader = "X-Request-ID"

// statusSource reports on the member datastore
type statusSource interface {
	Status(ctx context.Context) database.Status
}

type routerDeps struct {
	db       statusSource
	members  members.Repository
	matching matching.Service
	activity activity.Service
	limits   matching.Limits
	timeout  time.Duration
	started  time.Time
	logger   *zap.Logger
}

// newRouter returns the mux router wrapped in CORS handling. CORS sits outside mux so
// preflight requests are answered before method matching rejects them.
func newRouter(deps routerDeps) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck(deps.started)).Methods(http.MethodGet)
	router.HandleFunc("/api", apiInfo).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/db/status", dbStatus(deps.db)).Methods(http.MethodGet)

	matching.RegisterRoutes(router, matching.NewHandler(deps.matching, deps.limits))
	activity.RegisterRoutes(router, activity.NewHandler(deps.activity), members.LoaderMiddleware(deps.members))

	memberRouter := members.NewRouter(members.NewHandler(members.NewService(deps.members, deps.timeout, deps.logger)))
	router.PathPrefix("/api/v1/members").Handler(http.StripPrefix("/api/v1/members", memberRouter))

	router.Use(loggingMiddleware(deps.logger))

	return corsMiddleware(router)
}

func healthCheck(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Round(time.Second).String(),
		})
	}
}

func apiInfo(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Kiekky Matchmaker API",
		"version": "1.0.0",
		"endpoints": map[string]interface{}{
			"matching": map[string]string{
				"find":          "GET /api/v1/matches/find?memberId=&strictness=&limit=&filter_*=",
				"compatibility": "GET /api/v1/matches/compatibility?memberId=&candidateId=",
			},
			"members": map[string]string{
				"list":   "GET /api/v1/members?limit=&offset=",
				"search": "GET /api/v1/members/search",
				"get":    "GET /api/v1/members/{id}",
			},
			"activity": map[string]string{
				"save":       "POST /api/v1/activity/save",
				"exclude":    "POST /api/v1/activity/exclude",
				"saved":      "GET /api/v1/activity/saved?memberId=",
				"recent":     "GET /api/v1/activity/recent?memberId=&limit=",
				"statistics": "GET /api/v1/activity/statistics?memberId=",
			},
			"ops": map[string]string{
				"health":   "GET /health",
				"metrics":  "GET /metrics",
				"dbStatus": "GET /api/v1/db/status",
			},
		},
	})
}

func dbStatus(source statusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := source.Status(r.Context())
		code := http.StatusOK
		if !status.Connected {
			code = http.StatusServiceUnavailable
		}
		utils.RespondWithJSON(w, code, map[string]interface{}{
			"success":  status.Connected,
			"database": status,
		})
	}
}

// responseWriter captures the status code for the access log
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", requestID),
			)
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
