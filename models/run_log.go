package models

import (
	"time"
)

// PipelineRunLog представляет запись о запуске ETL процесса
type PipelineRunLog struct {
	ID                   int       `json:"id"`
	RunID                string    `json:"run_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	RowsRead             int       `json:"rows_read"`
	RowsInvalid          int       `json:"rows_invalid"`
	RowsExtremeDropped   int       `json:"rows_extreme_dropped"`
	RowsCoercionFailed   int       `json:"rows_coercion_failed"`
	RowsUploaded         int       `json:"rows_uploaded"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// PipelineRunLogRepository представляет репозиторий для работы с журналом запусков
type PipelineRunLogRepository interface {
	// CreateRunLogTable создает таблицу журнала запусков, если она не существует
	CreateRunLogTable() error

	// CreateLogEntry создает новую запись о запуске пайплайна
	CreateLogEntry(runID string, startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении
	UpdateLogEntrySuccess(id int, endTime time.Time, stats DropStats, rowsUploaded int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске
	GetLastSuccessfulRun() (*PipelineRunLog, error)

	// GetRunStats получает статистику о запусках за определенный период
	GetRunStats(days int) ([]PipelineRunLog, error)
}
