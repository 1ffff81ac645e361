package window

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Префикс ключей с выгрузками грузовиков в бакете
	bucketKeyPrefix = "trucks/"

	// Префикс имени файла выгрузки (третье поколение касс)
	devicePrefix = "T3"

	// Расширение файлов выгрузки
	fileSuffix = ".csv"
)

// Window представляет окно загрузки: дата и час, за которые обрабатываются файлы
type Window struct {
	Date time.Time
	Hour int
}

// Compute вычисляет окно загрузки по текущему времени.
// Возвращает false, если текущий час не входит в список часов выгрузки —
// это штатное завершение без обработки, а не ошибка
func Compute(now time.Time, allowedHours []int) (Window, bool) {
	hour := now.Hour()

	allowed := false
	for _, h := range allowedHours {
		if h == hour {
			allowed = true
			break
		}
	}

	if !allowed {
		return Window{}, false
	}

	return Window{Date: now, Hour: hour}, true
}

// DatePath возвращает часть пути с датой в формате бакета: YYYY-M/D
// (месяц и день без ведущих нулей)
func (w Window) DatePath() string {
	return fmt.Sprintf("%d-%d/%d", w.Date.Year(), int(w.Date.Month()), w.Date.Day())
}

// KeyPrefix возвращает префикс ключей бакета для данного окна:
// trucks/YYYY-M/D/HH/T3
func (w Window) KeyPrefix() string {
	return fmt.Sprintf("%s%s/%d/%s", bucketKeyPrefix, w.DatePath(), w.Hour, devicePrefix)
}

// LocalDir возвращает локальную директорию для скачанных файлов окна
func (w Window) LocalDir(basePath string) string {
	return fmt.Sprintf("%s/%s/%d", basePath, w.DatePath(), w.Hour)
}

// FilterKeys отбирает ключи бакета, относящиеся к данному окну.
// Фильтрация строго по префиксу и расширению: бакет может содержать
// посторонние файлы для других потребителей, они молча пропускаются
func FilterKeys(keys []string, w Window) []string {
	prefix := w.KeyPrefix()

	var validKeys []string
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, fileSuffix) {
			validKeys = append(validKeys, key)
		}
	}
	return validKeys
}
