package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_trucks/models"
)

func TestNormalizeExtremeValue(t *testing.T) {
	testCases := []struct {
		value     float64
		corrected float64
	}{
		{499, 4.99},
		{1099, 10.99},
		{50, 0.50},
		{125, 1.25},
	}

	for _, tc := range testCases {
		corrected, wasExtreme := NormalizeExtremeValue(tc.value)

		require.True(t, wasExtreme, "сумма %.2f выше порога", tc.value)
		assert.Equal(t, tc.corrected, corrected)
	}
}

func TestNormalizeExtremeValue_BelowThreshold(t *testing.T) {
	// Суммы ниже порога проходят без изменений
	for _, value := range []float64{0.01, 4.99, 12.50, 49.99} {
		corrected, wasExtreme := NormalizeExtremeValue(value)

		assert.False(t, wasExtreme)
		assert.Equal(t, value, corrected)
	}
}

func TestCollectNormalVersions_PerTruck(t *testing.T) {
	records := []models.TransactionRecord{
		{Total: "4.99", TruckID: 1},
		{Total: "12.50", TruckID: 1},
		{Total: "3.25", TruckID: 2},
		// Экстремальная сумма не попадает в множество нормальных
		{Total: "499", TruckID: 1},
		// Нечисловое значение пропускается
		{Total: "cash", TruckID: 1},
	}

	normals := collectNormalVersions(records)

	assert.True(t, normals[1][4.99])
	assert.True(t, normals[1][12.50])
	assert.True(t, normals[2][3.25])
	assert.False(t, normals[1][3.25], "множества нормальных сумм раздельны по грузовикам")
	assert.False(t, normals[1][499])
}
