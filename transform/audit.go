package transform

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/snappy"

	"github.com/LilVoxy/coursework_trucks/models"
)

// Имя файла с объединенной очищенной таблицей окна
const AuditFileName = "TRUCK_HIST_DATA.csv"

// WriteAuditFile записывает очищенную объединенную таблицу в csv-файл.
// Файл служит контрольным следом окна и входом для ручного перезапуска
// загрузки независимо от базы данных
func WriteAuditFile(filePath string, records []models.CleanedTransaction) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла %s: %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "type", "total", "truck_id"}); err != nil {
		return fmt.Errorf("ошибка при записи заголовка: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.EventAt.Format(timestampLayout),
			record.PaymentType,
			strconv.FormatFloat(record.TotalPrice, 'f', 2, 64),
			strconv.Itoa(record.TruckID),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("ошибка при записи строки: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка при записи csv: %w", err)
	}

	return nil
}

// CompressAuditFile создает сжатую snappy-копию контрольного файла
// рядом с исходным и возвращает ее путь
func CompressAuditFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("ошибка при чтении файла %s: %w", filePath, err)
	}

	compressed := snappy.Encode(nil, data)

	compressedPath := filePath + ".sz"
	if err := os.WriteFile(compressedPath, compressed, 0644); err != nil {
		return "", fmt.Errorf("ошибка при записи сжатого файла %s: %w", compressedPath, err)
	}

	return compressedPath, nil
}
