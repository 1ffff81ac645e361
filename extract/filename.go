package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Префикс имени файла выгрузки: T3 — поколение кассы, T — номер грузовика
const truckFilePrefix = "T3_T"

// IsTruckDataFile проверяет, соответствует ли имя файла соглашению
// об именовании выгрузок грузовиков
func IsTruckDataFile(filename string) bool {
	return strings.HasPrefix(filename, truckFilePrefix) && strings.HasSuffix(filename, ".csv")
}

// TruckIDFromFilename извлекает номер грузовика из имени файла выгрузки,
// например T3_T1_2024-6-1_12.csv -> 1
func TruckIDFromFilename(filename string) (int, error) {
	if !strings.HasPrefix(filename, truckFilePrefix) {
		return 0, fmt.Errorf("имя файла %q не соответствует соглашению об именовании", filename)
	}

	rest := strings.TrimPrefix(filename, truckFilePrefix)
	if rest == "" {
		return 0, fmt.Errorf("имя файла %q не содержит номера грузовика", filename)
	}

	truckID, err := strconv.Atoi(rest[:1])
	if err != nil {
		return 0, fmt.Errorf("имя файла %q не содержит номера грузовика: %w", filename, err)
	}

	if truckID <= 0 {
		return 0, fmt.Errorf("недопустимый номер грузовика %d в имени файла %q", truckID, filename)
	}

	return truckID, nil
}
