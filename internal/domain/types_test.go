package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidListingType(t *testing.T) {
	tests := []struct {
		name     string
		typ      ListingType
		expected bool
	}{
		{
			name:     "valid sale",
			typ:      ListingTypeSale,
			expected: true,
		},
		{
			name:     "valid rent",
			typ:      ListingTypeRent,
			expected: true,
		},
		{
			name:     "invalid empty type",
			typ:      ListingType(""),
			expected: false,
		},
		{
			name:     "invalid uppercase",
			typ:      ListingType("SALE"),
			expected: false,
		},
		{
			name:     "invalid random type",
			typ:      ListingType("lease"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidListingType(tt.typ)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		category PropertyCategory
		expected bool
	}{
		{
			name:     "valid house",
			category: CategoryHouse,
			expected: true,
		},
		{
			name:     "valid apartment",
			category: CategoryApartment,
			expected: true,
		},
		{
			name:     "valid commercial",
			category: CategoryCommercial,
			expected: true,
		},
		{
			name:     "invalid empty category",
			category: PropertyCategory(""),
			expected: false,
		},
		{
			name:     "invalid random category",
			category: PropertyCategory("castle"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidCategory(tt.category)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Currency
	}{
		{
			name:     "lowercase code",
			input:    "btc",
			expected: CurrencyBTC,
		},
		{
			name:     "mixed case with whitespace",
			input:    "  uSdC ",
			expected: CurrencyUSDC,
		},
		{
			name:     "already normalized",
			input:    "ETH",
			expected: CurrencyETH,
		},
		{
			name:     "empty string",
			input:    "",
			expected: Currency(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCurrency(tt.input))
		})
	}
}

func TestIsValidTokenNetwork(t *testing.T) {
	assert.True(t, IsValidTokenNetwork(NetworkEthereumMainnet))
	assert.True(t, IsValidTokenNetwork(NetworkPolygonMainnet))
	assert.True(t, IsValidTokenNetwork(NetworkSolanaMainnet))
	assert.False(t, IsValidTokenNetwork(TokenNetwork("")))
	assert.False(t, IsValidTokenNetwork(TokenNetwork("eip155:5")))
}

func TestNormalizeAmenity(t *testing.T) {
	assert.Equal(t, "swimming pool", NormalizeAmenity("  Swimming Pool "))
	assert.Equal(t, "gym", NormalizeAmenity("GYM"))
	assert.Equal(t, "", NormalizeAmenity("   "))
}
