package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
	"github.com/LilVoxy/coursework_trucks/window"
)

// Extractor координирует процесс извлечения файлов выгрузок из бакета
type Extractor struct {
	s3Client *S3Client
	logger   *utils.ETLLogger
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(s3Client *S3Client, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		s3Client: s3Client,
		logger:   logger,
	}
}

// Extract выполняет извлечение файлов выгрузок для окна загрузки:
// получает список ключей бакета, отбирает относящиеся к окну, скачивает
// их в локальную директорию и читает в память с номером грузовика из имени файла
func (e *Extractor) Extract(ctx context.Context, w window.Window, downloadDir string) ([]models.TruckFile, error) {
	startTime := time.Now()
	e.logger.Info("Начало фазы Extract (Извлечение файлов выгрузок)")

	keys, err := e.s3Client.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка файлов: %w", err)
	}

	validKeys := window.FilterKeys(keys, w)
	e.logger.Debug("Ключей в бакете: %d, относятся к окну: %d", len(keys), len(validKeys))

	if len(validKeys) == 0 {
		e.logger.Info("В бакете нет файлов выгрузок для окна %s/%d", w.DatePath(), w.Hour)
		return nil, nil
	}

	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка при создании директории %s: %w", downloadDir, err)
	}

	var truckFiles []models.TruckFile
	for _, key := range validKeys {
		filename := path.Base(key)

		// Повторная проверка имени: в директории окна могут лежать
		// служебные файлы, не являющиеся выгрузками касс
		if !IsTruckDataFile(filename) {
			e.logger.Debug("Файл %s пропущен: не является выгрузкой кассы", filename)
			continue
		}

		truckID, err := TruckIDFromFilename(filename)
		if err != nil {
			e.logger.Error("Файл %s пропущен: %v", filename, err)
			continue
		}

		destPath := path.Join(downloadDir, filename)
		if err := e.s3Client.Download(ctx, key, destPath); err != nil {
			return nil, fmt.Errorf("ошибка при скачивании файла %s: %w", key, err)
		}

		records, err := readTruckDataFile(destPath, truckID)
		if err != nil {
			return nil, fmt.Errorf("ошибка при чтении файла %s: %w", filename, err)
		}

		truckFiles = append(truckFiles, models.TruckFile{
			Filename: filename,
			TruckID:  truckID,
			Records:  records,
		})
	}

	totalRecords := 0
	for _, file := range truckFiles {
		totalRecords += len(file.Records)
	}

	e.logger.Info("Фаза Extract завершена. Длительность: %v", time.Since(startTime))
	e.logger.Info("Извлечено: %d файлов, %d строк транзакций", len(truckFiles), totalRecords)

	return truckFiles, nil
}

// readTruckDataFile читает csv-файл выгрузки в набор сырых записей.
// Ожидаемые колонки: timestamp, type, total; первая строка — заголовок
func readTruckDataFile(filePath string, truckID int) ([]models.TransactionRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии файла: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Кассы иногда выгружают строки с лишними или недостающими полями
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе csv: %w", err)
	}

	var records []models.TransactionRecord
	for i, row := range rows {
		// Пропускаем заголовок
		if i == 0 {
			continue
		}

		if len(row) < 3 {
			continue
		}

		records = append(records, models.TransactionRecord{
			Timestamp:   row[0],
			PaymentType: row[1],
			Total:       row[2],
			TruckID:     truckID,
		})
	}

	return records, nil
}
