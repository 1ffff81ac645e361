package transform

import (
	"math"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
)

// Формат метки времени кассы после удаления часового пояса
const timestampLayout = "2006-01-02 15:04:05"

// Transformer координирует процесс очистки данных транзакций.
// Этапы выполняются строго по порядку: сначала удаляется брак из колонки
// total, затем нормализуются метки времени, затем исправляются
// экстремальные суммы (сравнение с нормальными версиями требует, чтобы
// брак уже был удален), и только в конце — строгое приведение типов
type Transformer struct {
	logger *utils.ETLLogger
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger: logger,
	}
}

// Transform объединяет выгрузки всех грузовиков в одну таблицу
// и выполняет полный процесс очистки
func (t *Transformer) Transform(truckFiles []models.TruckFile) ([]models.CleanedTransaction, models.DropStats) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Очистка данных)")

	// Объединяем записи всех грузовиков в одну таблицу
	var combined []models.TransactionRecord
	for _, file := range truckFiles {
		combined = append(combined, file.Records...)
	}

	cleaned, stats := t.CleanRecords(combined)

	t.logger.Info("Фаза Transform завершена. Длительность: %v", time.Since(startTime))
	t.logger.Info("Строк прочитано: %d, брак в total: %d, экстремальных отброшено: %d, не прошло приведение типов: %d",
		stats.RowsRead, stats.InvalidTotal, stats.ExtremeDropped, stats.CoercionFailed)

	return cleaned, stats
}

// CleanRecords выполняет этапы очистки над объединенной таблицей записей.
// Строки только отбрасываются, новые никогда не добавляются
func (t *Transformer) CleanRecords(records []models.TransactionRecord) ([]models.CleanedTransaction, models.DropStats) {
	stats := models.DropStats{RowsRead: len(records)}

	// Этап 1: удаление строк с браком в колонке total
	valid := t.removeInvalidRows(records, &stats)

	// Этап 2: нормализация меток времени
	for i := range valid {
		valid[i].Timestamp = TrimTimezoneSuffix(valid[i].Timestamp)
	}

	// Этапы 3-4: исправление экстремальных сумм и удаление неисправимых
	corrected := t.fixExtremeValues(valid, &stats)

	// Этап 5: строгое приведение типов
	cleaned := t.coerceTypes(corrected, &stats)

	return cleaned, stats
}

// removeInvalidRows отбрасывает строки, в которых колонка total
// содержит маркер брака
func (t *Transformer) removeInvalidRows(records []models.TransactionRecord, stats *models.DropStats) []models.TransactionRecord {
	var valid []models.TransactionRecord
	for _, record := range records {
		if IsInvalidTotal(record.Total) {
			stats.InvalidTotal++
			continue
		}
		valid = append(valid, record)
	}
	return valid
}

// fixExtremeValues исправляет суммы с пропущенной десятичной точкой.
// Исправленная сумма принимается только если она точно совпадает с другой
// суммой того же грузовика в этом окне — иначе строка отбрасывается,
// чтобы не искалечить настоящую крупную сумму
func (t *Transformer) fixExtremeValues(records []models.TransactionRecord, stats *models.DropStats) []models.TransactionRecord {
	normals := collectNormalVersions(records)

	var kept []models.TransactionRecord
	for _, record := range records {
		value, err := strconv.ParseFloat(record.Total, 64)
		if err != nil {
			// Оставляем для этапа приведения типов, там строка будет
			// отброшена и посчитана
			kept = append(kept, record)
			continue
		}

		corrected, wasExtreme := NormalizeExtremeValue(value)
		if !wasExtreme {
			kept = append(kept, record)
			continue
		}

		if normals[record.TruckID][corrected] {
			t.logger.Debug("Грузовик %d: сумма %s исправлена на %.2f", record.TruckID, record.Total, corrected)
			record.Total = strconv.FormatFloat(corrected, 'f', 2, 64)
			kept = append(kept, record)
			continue
		}

		stats.ExtremeDropped++
	}

	return kept
}

// coerceTypes приводит колонки к целевым типам. Строка, не прошедшая
// приведение, отбрасывается и учитывается в счетчике — кассы периодически
// выгружают несколько испорченных строк за окно, и это не должно
// останавливать весь пакет
func (t *Transformer) coerceTypes(records []models.TransactionRecord, stats *models.DropStats) []models.CleanedTransaction {
	var cleaned []models.CleanedTransaction
	for _, record := range records {
		eventAt, err := time.Parse(timestampLayout, record.Timestamp)
		if err != nil {
			stats.CoercionFailed++
			continue
		}

		total, err := strconv.ParseFloat(record.Total, 64)
		if err != nil || total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
			stats.CoercionFailed++
			continue
		}

		if record.TruckID <= 0 {
			stats.CoercionFailed++
			continue
		}

		cleaned = append(cleaned, models.CleanedTransaction{
			EventAt:     eventAt,
			PaymentType: record.PaymentType,
			TotalPrice:  total,
			TruckID:     record.TruckID,
		})
	}

	return cleaned
}
