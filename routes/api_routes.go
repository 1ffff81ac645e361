// routes/api_routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_trucks/models"
)

// SetupRoutes настраивает маршруты API статуса пайплайна
func SetupRoutes(router *mux.Router, db *sql.DB, runLogRepo models.PipelineRunLogRepository) {
	// Применяем CORS middleware
	router.Use(corsMiddleware)

	// API журнала запусков
	router.HandleFunc("/api/runs/latest", GetLatestRunHandler(runLogRepo)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs", GetRunStatsHandler(runLogRepo)).Methods("GET", "OPTIONS")

	// Проверка состояния
	router.HandleFunc("/api/health", HealthHandler(db)).Methods("GET", "OPTIONS")
}

// corsMiddleware разрешает кросс-доменные запросы к API статуса
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
