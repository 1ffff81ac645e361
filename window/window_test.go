package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedHours = []int{12, 15, 18, 21}

func TestCompute_AllowedHour(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 5, 0, 0, time.UTC)

	w, ok := Compute(now, allowedHours)

	require.True(t, ok)
	assert.Equal(t, 18, w.Hour)
	assert.Equal(t, "2024-6/1", w.DatePath())
}

func TestCompute_DisallowedHour(t *testing.T) {
	// Час вне расписания выгрузки — окно не формируется
	now := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	_, ok := Compute(now, allowedHours)

	assert.False(t, ok)
}

func TestKeyPrefix_NoLeadingZeros(t *testing.T) {
	w := Window{Date: time.Date(2024, 11, 9, 12, 0, 0, 0, time.UTC), Hour: 12}

	assert.Equal(t, "trucks/2024-11/9/12/T3", w.KeyPrefix())
}

func TestLocalDir(t *testing.T) {
	w := Window{Date: time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC), Hour: 21}

	assert.Equal(t, "./data-files/2024-6/1/21", w.LocalDir("./data-files"))
}

func TestFilterKeys(t *testing.T) {
	w := Window{Date: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Hour: 12}

	keys := []string{
		"trucks/2024-6/1/12/T3_T1_2024-6-1_12.csv",
		"trucks/2024-6/1/12/T3_T2_2024-6-1_12.csv",
		// Другой час
		"trucks/2024-6/1/15/T3_T1_2024-6-1_15.csv",
		// Другая дата
		"trucks/2024-5/30/12/T3_T1_2024-5-30_12.csv",
		// Посторонний файл другого потребителя
		"trucks/2024-6/1/12/metadata.json",
		"reports/2024-6/1/summary.csv",
	}

	valid := FilterKeys(keys, w)

	assert.Equal(t, []string{
		"trucks/2024-6/1/12/T3_T1_2024-6-1_12.csv",
		"trucks/2024-6/1/12/T3_T2_2024-6-1_12.csv",
	}, valid)
}

func TestFilterKeys_Empty(t *testing.T) {
	w := Window{Date: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Hour: 12}

	assert.Empty(t, FilterKeys(nil, w))
}
