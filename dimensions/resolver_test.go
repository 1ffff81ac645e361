package dimensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_trucks/models"
)

func TestPaymentMethodMapping_Lookup(t *testing.T) {
	mapping := PaymentMethodMapping{"cash": 1, "card": 2}

	id, ok := mapping.Lookup("cash")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = mapping.Lookup("crypto")
	assert.False(t, ok)
}

func TestTruckRatingMapping_UnknownDefaultsToZero(t *testing.T) {
	mapping := TruckRatingMapping{1: 5, 2: 4}

	assert.Equal(t, 5, mapping.RatingFor(1))
	// Новый грузовик, которого еще нет в справочнике
	assert.Equal(t, 0, mapping.RatingFor(7))
}

func TestResolvePaymentMethods(t *testing.T) {
	mapping := PaymentMethodMapping{"cash": 1, "card": 2}

	records := []models.CleanedTransaction{
		{PaymentType: "cash", TotalPrice: 4.99, TruckID: 1},
		{PaymentType: "card", TotalPrice: 12.50, TruckID: 1},
	}

	resolved, unmapped := ResolvePaymentMethods(records, mapping)

	require.Len(t, resolved, 2)
	assert.Equal(t, 0, unmapped)
	assert.Equal(t, 1, resolved[0].PaymentMethodID)
	assert.True(t, resolved[0].PaymentMethodResolved)
	assert.Equal(t, 2, resolved[1].PaymentMethodID)
}

func TestResolvePaymentMethods_UnmappedPassesThrough(t *testing.T) {
	mapping := PaymentMethodMapping{"cash": 1}

	records := []models.CleanedTransaction{
		{PaymentType: "voucher", TotalPrice: 4.99, TruckID: 1},
	}

	resolved, unmapped := ResolvePaymentMethods(records, mapping)

	require.Len(t, resolved, 1)
	assert.Equal(t, 1, unmapped)
	// Строка не отбрасывается, исходный текст сохраняется
	assert.False(t, resolved[0].PaymentMethodResolved)
	assert.Equal(t, "voucher", resolved[0].PaymentType)
}

func TestCountUnknownRatings(t *testing.T) {
	ratings := TruckRatingMapping{1: 5}

	records := []models.CleanedTransaction{
		{TruckID: 1},
		{TruckID: 2},
		{TruckID: 2},
		{TruckID: 3},
	}

	assert.Equal(t, 2, CountUnknownRatings(records, ratings))
}
