package transform

import (
	"strconv"
	"strings"

	"github.com/LilVoxy/coursework_trucks/models"
)

// Суммы от этого порога считаются подозрением на пропущенную
// десятичную точку при ручном вводе
const extremeThreshold = 50.0

// NormalizeExtremeValue возвращает исправленную версию экстремальной суммы:
// десятичная точка вставляется перед двумя последними цифрами
// (499 -> 4.99, 1099 -> 10.99, 50 -> 0.50). Для сумм ниже порога
// возвращается false — исправление не требуется
func NormalizeExtremeValue(value float64) (float64, bool) {
	if value < extremeThreshold {
		return value, false
	}

	digits := strings.ReplaceAll(strconv.FormatFloat(value, 'f', -1, 64), ".", "")
	if len(digits) == 3 {
		digits = "0" + digits
	}

	normalized := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	corrected, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, true
	}

	return corrected, true
}

// collectNormalVersions собирает по каждому грузовику множество
// "нормальных" сумм окна (больше нуля и ниже порога). Исправленная
// экстремальная сумма принимается только при точном совпадении
// с одной из них
func collectNormalVersions(records []models.TransactionRecord) map[int]map[float64]bool {
	normals := make(map[int]map[float64]bool)

	for _, record := range records {
		value, err := strconv.ParseFloat(record.Total, 64)
		if err != nil {
			continue
		}

		if value <= 0 || value >= extremeThreshold {
			continue
		}

		if normals[record.TruckID] == nil {
			normals[record.TruckID] = make(map[float64]bool)
		}
		normals[record.TruckID][value] = true
	}

	return normals
}
