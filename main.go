// main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_trucks/routes"
)

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once или scheduled")
	logPtr := flag.Bool("log", false, "Дублировать логи в файл")
	numberPtr := flag.Int("number", 1_000_000, "Максимальное количество строк для загрузки в базу")
	pathPtr := flag.String("path", "", "Путь к директории с файлами данных (переопределяет путь окна)")

	flag.Parse()

	options := RunOptions{
		EnableFileLogging: *logPtr,
		MaxRows:           *numberPtr,
		SourcePath:        *pathPtr,
	}

	log.Println("Запуск Pipeline Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce(options)
	case "scheduled":
		RunScheduled(options)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled")
		os.Exit(1)
	}

	log.Println("Pipeline Runner завершил работу")
}

// RunOnce запускает пайплайн один раз
func RunOnce(options RunOptions) {
	ctx := context.Background()

	runner, err := NewPipelineRunner(ctx, options)
	if err != nil {
		log.Fatalf("Ошибка при создании Pipeline Runner: %v", err)
	}

	if err := runner.ExecutePipeline(ctx); err != nil {
		// Ошибка уже записана в журнал запусков; завершаемся штатно
		// с ненулевым кодом, база остается в состоянии последней
		// успешной фиксации
		runner.logger.Error("Ошибка при выполнении пайплайна: %v", err)
		runner.Close()
		os.Exit(1)
	}

	runner.Close()
}

// RunScheduled запускает пайплайн по расписанию вместе с HTTP-сервером статуса
func RunScheduled(options RunOptions) {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Запускаем горутину для обработки сигналов
	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем Pipeline Runner...")
		cancel()
	}()

	runner, err := NewPipelineRunner(ctx, options)
	if err != nil {
		log.Fatalf("Ошибка при создании Pipeline Runner: %v", err)
	}
	defer runner.Close()

	// Создаем маршрутизатор и HTTP-сервер статуса
	router := mux.NewRouter()
	routes.SetupRoutes(router, runner.db, runner.runLogRepo)

	server := &http.Server{
		Addr:    runner.config.ServerAddr,
		Handler: router,
	}

	go func() {
		runner.logger.Info("HTTP-сервер статуса запущен на %s", runner.config.ServerAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			runner.logger.Error("Ошибка HTTP-сервера статуса: %v", err)
		}
	}()

	// Запускаем планировщик; блокируется до отмены контекста
	runner.StartScheduler(ctx)

	// Останавливаем HTTP-сервер
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		runner.logger.Error("Ошибка при остановке HTTP-сервера статуса: %v", err)
	}
}
