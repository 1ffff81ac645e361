package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// ETLLogger представляет логгер для ETL-процесса
type ETLLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	logToFile   bool
}

// NewETLLogger создает новый экземпляр логгера для ETL.
// Если logToFile включен, сообщения дублируются в файл лога за текущую дату
func NewETLLogger(logToFile bool) *ETLLogger {
	var writer io.Writer = io.Discard

	if logToFile {
		// Создаем или открываем лог-файл для записи
		currentTime := time.Now().Format("2006-01-02")
		logFileName := fmt.Sprintf("pipeline_log_%s.log", currentTime)

		file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
		}
		writer = file
	}

	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(writer, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(writer, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(writer, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		logToFile:   logToFile,
	}
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("INFO:", msg)
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	log.Println("ERROR:", msg)
}

// Debug логирует отладочное сообщение (только в файл лога)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.logToFile {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)
}

// LogPipelineStart логирует начало работы пайплайна
func (l *ETLLogger) LogPipelineStart(runID string) {
	l.Info("Начало выполнения ETL-процесса (запуск %s)", runID)
}

// LogPipelineComplete логирует итоговую сводку по запуску пайплайна
func (l *ETLLogger) LogPipelineComplete(startTime time.Time, rowsRead, rowsDropped, rowsUploaded int) {
	duration := time.Since(startTime)
	l.Info("ETL-процесс завершён. Длительность: %v", duration)
	l.Info("Прочитано строк: %d, отброшено: %d, загружено в базу: %d", rowsRead, rowsDropped, rowsUploaded)
}
