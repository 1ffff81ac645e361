package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLRunLogRepository реализация PipelineRunLogRepository для MySQL
type MySQLRunLogRepository struct {
	db *sql.DB
}

// NewMySQLRunLogRepository создает новый экземпляр MySQLRunLogRepository
func NewMySQLRunLogRepository(db *sql.DB) *MySQLRunLogRepository {
	return &MySQLRunLogRepository{
		db: db,
	}
}

// CreateRunLogTable создает таблицу журнала запусков пайплайна, если она не существует
func (r *MySQLRunLogRepository) CreateRunLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS pipeline_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		rows_read INT DEFAULT 0,
		rows_invalid INT DEFAULT 0,
		rows_extreme_dropped INT DEFAULT 0,
		rows_coercion_failed INT DEFAULT 0,
		rows_uploaded INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы pipeline_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске пайплайна
func (r *MySQLRunLogRepository) CreateLogEntry(runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO pipeline_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске пайплайна: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении пайплайна
func (r *MySQLRunLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, stats DropStats, rowsUploaded int) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pipeline_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала запуска: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE pipeline_run_log
	SET
		end_time = ?,
		status = 'success',
		rows_read = ?,
		rows_invalid = ?,
		rows_extreme_dropped = ?,
		rows_coercion_failed = ?,
		rows_uploaded = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime,
		stats.RowsRead,
		stats.InvalidTotal,
		stats.ExtremeDropped,
		stats.CoercionFailed,
		rowsUploaded,
		executionTime,
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске пайплайна: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении пайплайна
func (r *MySQLRunLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pipeline_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала запуска: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	// Обновляем запись
	query := `
	UPDATE pipeline_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске пайплайна: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске пайплайна
func (r *MySQLRunLogRepository) GetLastSuccessfulRun() (*PipelineRunLog, error) {
	query := `
	SELECT
		id, run_id, start_time, end_time, status,
		rows_read, rows_invalid, rows_extreme_dropped,
		rows_coercion_failed, rows_uploaded,
		IFNULL(error_message, ''), execution_time_seconds
	FROM pipeline_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog PipelineRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID, &runLog.RunID, &runLog.StartTime, &runLog.EndTime, &runLog.Status,
		&runLog.RowsRead, &runLog.RowsInvalid, &runLog.RowsExtremeDropped,
		&runLog.RowsCoercionFailed, &runLog.RowsUploaded,
		&runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске: %w", err)
	}

	return &runLog, nil
}

// GetRunStats получает статистику о запусках пайплайна за определенный период
func (r *MySQLRunLogRepository) GetRunStats(days int) ([]PipelineRunLog, error) {
	// end_time может быть NULL для незавершенных запусков
	query := `
	SELECT
		id, run_id, start_time, IFNULL(end_time, start_time), status,
		rows_read, rows_invalid, rows_extreme_dropped,
		rows_coercion_failed, rows_uploaded,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM pipeline_run_log
	WHERE start_time >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY start_time DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков: %w", err)
	}
	defer rows.Close()

	var logs []PipelineRunLog
	for rows.Next() {
		var runLog PipelineRunLog
		err := rows.Scan(
			&runLog.ID, &runLog.RunID, &runLog.StartTime, &runLog.EndTime, &runLog.Status,
			&runLog.RowsRead, &runLog.RowsInvalid, &runLog.RowsExtremeDropped,
			&runLog.RowsCoercionFailed, &runLog.RowsUploaded,
			&runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи о запуске: %w", err)
		}
		logs = append(logs, runLog)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по записям о запусках: %w", err)
	}

	return logs, nil
}
