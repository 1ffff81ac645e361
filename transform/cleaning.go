package transform

import (
	"strings"
)

// Строковые представления нуля, которые встречаются в выгрузках касс
var zeroRenderings = map[string]bool{
	"0":    true,
	"0.00": true,
	"0.0":  true,
	"0. ":  true,
}

// IsInvalidTotal проверяет значение колонки total на маркеры брака.
// Бракованными считаются пустые значения, служебные метки касс
// (NULL, None, void, blank, ERR, extreme), любые значения с символом '-'
// (отрицательная или искаженная сумма) и нулевые суммы
func IsInvalidTotal(rawValue string) bool {
	if strings.Contains(rawValue, "-") {
		return true
	}

	if zeroRenderings[rawValue] {
		return true
	}

	lower := strings.ToLower(rawValue)
	if rawValue == "" || lower == "void" || rawValue == "NULL" || rawValue == "None" {
		return true
	}

	if lower == "blank" || rawValue == "ERR" || rawValue == "extreme" {
		return true
	}

	return false
}

// TrimTimezoneSuffix удаляет суффикс часового пояса вида ±HH:MM
// из метки времени кассы, приводя ее к локальной форме
// YYYY-MM-DD HH:MM:SS. Метка без суффикса возвращается как есть,
// поэтому повторная очистка ничего не меняет
func TrimTimezoneSuffix(timestamp string) string {
	const suffixLen = 6 // например "+01:00"

	if len(timestamp) <= suffixLen {
		return timestamp
	}

	sign := timestamp[len(timestamp)-suffixLen]
	if sign != '+' && sign != '-' {
		return timestamp
	}

	return timestamp[:len(timestamp)-suffixLen]
}
