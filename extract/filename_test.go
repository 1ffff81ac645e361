package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruckIDFromFilename(t *testing.T) {
	testCases := []struct {
		filename string
		expected int
	}{
		{"T3_T1_2024-6-1_12.csv", 1},
		{"T3_T2_2024-6-1_12.csv", 2},
		{"T3_T6.csv", 6},
	}

	for _, tc := range testCases {
		truckID, err := TruckIDFromFilename(tc.filename)

		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.expected, truckID, tc.filename)
	}
}

func TestTruckIDFromFilename_Invalid(t *testing.T) {
	invalidNames := []string{
		"",
		"T3_T",
		"T3_Tx_2024.csv",
		"T3_T0_2024.csv",
		"metadata.json",
		"T2_T1_2024.csv",
	}

	for _, filename := range invalidNames {
		_, err := TruckIDFromFilename(filename)

		assert.Error(t, err, filename)
	}
}

func TestIsTruckDataFile(t *testing.T) {
	assert.True(t, IsTruckDataFile("T3_T1_2024-6-1_12.csv"))
	assert.False(t, IsTruckDataFile("T3_T1_2024-6-1_12.json"))
	assert.False(t, IsTruckDataFile("TRUCK_HIST_DATA.csv"))
	assert.False(t, IsTruckDataFile("metadata.json"))
}
