package transform

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
)

func newTestLogger() *utils.ETLLogger {
	return utils.NewETLLogger(false)
}

func TestWriteAuditFile(t *testing.T) {
	filePath := path.Join(t.TempDir(), AuditFileName)

	records := []models.CleanedTransaction{
		{
			EventAt:     time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC),
			PaymentType: "cash",
			TotalPrice:  4.99,
			TruckID:     1,
		},
		{
			EventAt:     time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC),
			PaymentType: "card",
			TotalPrice:  12.5,
			TruckID:     2,
		},
	}

	require.NoError(t, WriteAuditFile(filePath, records))

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)

	expected := "timestamp,type,total,truck_id\n" +
		"2024-06-01 12:05:00,cash,4.99,1\n" +
		"2024-06-01 12:10:00,card,12.50,2\n"
	assert.Equal(t, expected, string(data))
}

func TestCompressAuditFile(t *testing.T) {
	filePath := path.Join(t.TempDir(), AuditFileName)

	records := []models.CleanedTransaction{
		{
			EventAt:     time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC),
			PaymentType: "cash",
			TotalPrice:  4.99,
			TruckID:     1,
		},
	}
	require.NoError(t, WriteAuditFile(filePath, records))

	compressedPath, err := CompressAuditFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, filePath+".sz", compressedPath)

	// Сжатая копия распаковывается в исходное содержимое
	original, err := os.ReadFile(filePath)
	require.NoError(t, err)

	compressed, err := os.ReadFile(compressedPath)
	require.NoError(t, err)

	decompressed, err := snappy.Decode(nil, compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}
