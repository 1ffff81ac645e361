// routes/run_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_trucks/models"
)

// RunStatsResponse структура ответа API для списка запусков
type RunStatsResponse struct {
	Runs []models.PipelineRunLog `json:"runs"`
}

// GetLatestRunHandler обрабатывает запросы на получение последнего успешного запуска
func GetLatestRunHandler(runLogRepo models.PipelineRunLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastRun, err := runLogRepo.GetLastSuccessfulRun()
		if err != nil {
			log.Printf("❌ Ошибка при запросе последнего запуска: %v", err)
			http.Error(w, "Ошибка при получении информации о последнем запуске", http.StatusInternalServerError)
			return
		}

		if lastRun == nil {
			http.Error(w, "Успешных запусков еще не было", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastRun); err != nil {
			log.Printf("❌ Ошибка при формировании ответа: %v", err)
		}
	}
}

// GetRunStatsHandler обрабатывает запросы на получение статистики запусков.
// Параметр days задает глубину выборки в днях (по умолчанию 7)
func GetRunStatsHandler(runLogRepo models.PipelineRunLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7

		daysStr := r.URL.Query().Get("days")
		if daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err != nil || parsed <= 0 {
				http.Error(w, "Неверный формат параметра days", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		runs, err := runLogRepo.GetRunStats(days)
		if err != nil {
			log.Printf("❌ Ошибка при запросе статистики запусков: %v", err)
			http.Error(w, "Ошибка при получении статистики запусков", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(RunStatsResponse{Runs: runs}); err != nil {
			log.Printf("❌ Ошибка при формировании ответа: %v", err)
		}
	}
}

// HealthHandler обрабатывает запросы проверки состояния сервиса
func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			log.Printf("❌ База данных недоступна: %v", err)
			http.Error(w, "База данных недоступна", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
