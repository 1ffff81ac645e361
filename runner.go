package main

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/LilVoxy/coursework_trucks/config"
	"github.com/LilVoxy/coursework_trucks/dimensions"
	"github.com/LilVoxy/coursework_trucks/extract"
	"github.com/LilVoxy/coursework_trucks/load"
	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/transform"
	"github.com/LilVoxy/coursework_trucks/utils"
	"github.com/LilVoxy/coursework_trucks/window"
)

// RunOptions содержит параметры запуска пайплайна из командной строки
type RunOptions struct {
	// Дублировать логи в файл
	EnableFileLogging bool

	// Максимальное количество строк для загрузки в базу за один запуск
	MaxRows int

	// Переопределение директории с файлами данных
	SourcePath string
}

// PipelineRunner связывает все фазы пайплайна: извлечение файлов из S3,
// очистку, подстановку справочников и загрузку в таблицу фактов
type PipelineRunner struct {
	config      config.PipelineConfig
	options     RunOptions
	db          *sql.DB
	logger      *utils.ETLLogger
	extractor   *extract.Extractor
	transformer *transform.Transformer
	resolver    *dimensions.Resolver
	loader      *load.TransactionLoader
	runLogRepo  models.PipelineRunLogRepository
}

// NewPipelineRunner создает новый экземпляр PipelineRunner
func NewPipelineRunner(ctx context.Context, options RunOptions) (*PipelineRunner, error) {
	// Получаем конфигурацию
	pipelineConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewETLLogger(options.EnableFileLogging)
	logger.Info("Инициализация Pipeline Runner")

	// Подключаемся к базе данных
	db, err := config.ConnectDatabase(pipelineConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	// Инициализируем репозиторий журнала запусков
	runLogRepo := models.NewMySQLRunLogRepository(db)

	// Создаем таблицу журнала, если она еще не существует
	if err := runLogRepo.CreateRunLogTable(); err != nil {
		config.CloseDatabase(db)
		return nil, fmt.Errorf("ошибка при создании таблицы журнала запусков: %w", err)
	}

	// Создаем клиент S3
	s3Client, err := extract.NewS3Client(ctx, pipelineConfig.S3Config, logger)
	if err != nil {
		config.CloseDatabase(db)
		return nil, fmt.Errorf("ошибка при создании клиента S3: %w", err)
	}

	return &PipelineRunner{
		config:      pipelineConfig,
		options:     options,
		db:          db,
		logger:      logger,
		extractor:   extract.NewExtractor(s3Client, logger),
		transformer: transform.NewTransformer(logger),
		resolver:    dimensions.NewResolver(db, logger),
		loader:      load.NewTransactionLoader(db, logger),
		runLogRepo:  runLogRepo,
	}, nil
}

// Close закрывает соединение с базой данных
func (r *PipelineRunner) Close() {
	r.logger.Info("Завершение работы Pipeline Runner")
	config.CloseDatabase(r.db)
}

// ExecutePipeline выполняет полный проход пайплайна для текущего окна загрузки
func (r *PipelineRunner) ExecutePipeline(ctx context.Context) error {
	// Проверяем окно загрузки до каких-либо обращений к хранилищу.
	// Час вне расписания — штатное завершение, а не ошибка
	w, ok := window.Compute(time.Now(), r.config.AllowedHours)
	if !ok {
		r.logger.Info("Нет новых файлов грузовиков в это время.")
		return nil
	}

	runID := uuid.New().String()
	startTime := time.Now()
	r.logger.LogPipelineStart(runID)

	// Создаем запись в журнале запусков
	logID, err := r.runLogRepo.CreateLogEntry(runID, startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// 1. Фаза извлечения файлов (Extract)
	downloadDir := r.options.SourcePath
	if downloadDir == "" {
		downloadDir = w.LocalDir(r.config.DownloadPath)
	}

	truckFiles, err := r.extractor.Extract(ctx, w, downloadDir)
	if err != nil {
		return r.failRun(logID, fmt.Errorf("ошибка в фазе Extract: %w", err))
	}

	// Если файлов для окна нет, завершаем процесс
	if len(truckFiles) == 0 {
		r.logger.Info("Нет данных для обработки")
		r.updateRunLogSuccess(logID, models.DropStats{}, 0)
		return nil
	}

	// 2. Фаза очистки данных (Transform)
	cleaned, stats := r.transformer.Transform(truckFiles)

	// Записываем контрольный файл окна
	auditPath := path.Join(downloadDir, transform.AuditFileName)
	if err := transform.WriteAuditFile(auditPath, cleaned); err != nil {
		return r.failRun(logID, fmt.Errorf("ошибка при записи контрольного файла: %w", err))
	}
	r.logger.Info("Контрольный файл окна записан: %s", auditPath)

	if compressedPath, err := transform.CompressAuditFile(auditPath); err != nil {
		// Сжатая копия — удобство, а не обязательный артефакт
		r.logger.Error("Не удалось создать сжатую копию контрольного файла: %v", err)
	} else {
		r.logger.Debug("Сжатая копия контрольного файла: %s", compressedPath)
	}

	// 3. Подстановка справочников
	paymentMethods, err := r.resolver.LoadPaymentMethods()
	if err != nil {
		return r.failRun(logID, fmt.Errorf("ошибка при загрузке справочника способов оплаты: %w", err))
	}

	truckRatings, err := r.resolver.LoadTruckRatings()
	if err != nil {
		return r.failRun(logID, fmt.Errorf("ошибка при загрузке справочника грузовиков: %w", err))
	}

	if unknown := dimensions.CountUnknownRatings(cleaned, truckRatings); unknown > 0 {
		r.logger.Info("Грузовиков без рейтинга в справочнике: %d (потребители получат рейтинг 0)", unknown)
	}

	resolved, unmapped := dimensions.ResolvePaymentMethods(cleaned, paymentMethods)
	if unmapped > 0 {
		r.logger.Info("Строк с неизвестным способом оплаты: %d (переданы исходным текстом)", unmapped)
	}

	// 4. Фаза загрузки данных (Load)
	uploaded, err := r.loader.Load(resolved, r.options.MaxRows)
	if err != nil {
		return r.failRun(logID, fmt.Errorf("ошибка в фазе Load: %w", err))
	}

	// Обновляем запись в журнале и выводим итоговую сводку
	r.updateRunLogSuccess(logID, stats, uploaded)
	r.logger.LogPipelineComplete(startTime, stats.RowsRead, stats.TotalDropped(), uploaded)

	return nil
}

// failRun обновляет журнал запусков при ошибке и возвращает ее вызывающему коду
func (r *PipelineRunner) failRun(logID int, runErr error) error {
	r.logger.Error("%v", runErr)

	if err := r.runLogRepo.UpdateLogEntryFailure(logID, time.Now(), runErr.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	return runErr
}

// updateRunLogSuccess обновляет журнал запусков при успешном завершении
func (r *PipelineRunner) updateRunLogSuccess(logID int, stats models.DropStats, uploaded int) {
	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(), stats, uploaded); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}
}

// StartScheduler запускает планировщик для регулярного выполнения пайплайна.
// Планировщик срабатывает каждый час; запуски вне расписания выгрузки
// завершаются без обработки проверкой окна
func (r *PipelineRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика пайплайна с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск пайплайна")
		if err := r.ExecutePipeline(ctx); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного пайплайна: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик пайплайна остановлен")
}
