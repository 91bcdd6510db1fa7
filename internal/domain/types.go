package domain

import (
	"strings"
)

// ListingType represents whether a property is offered for sale or for rent
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// IsValidListingType checks if a listing type is valid
func IsValidListingType(t ListingType) bool {
	return t == ListingTypeSale || t == ListingTypeRent
}

// PropertyCategory represents the kind of property being listed
type PropertyCategory string

const (
	CategoryHouse      PropertyCategory = "house"
	CategoryApartment  PropertyCategory = "apartment"
	CategoryCondo      PropertyCategory = "condo"
	CategoryVilla      PropertyCategory = "villa"
	CategoryLand       PropertyCategory = "land"
	CategoryCommercial PropertyCategory = "commercial"
)

// IsValidCategory checks if a property category is valid
func IsValidCategory(c PropertyCategory) bool {
	switch c {
	case CategoryHouse, CategoryApartment, CategoryCondo, CategoryVilla, CategoryLand, CategoryCommercial:
		return true
	}
	return false
}

// Currency represents a supported cryptocurrency or stablecoin code (e.g., "BTC", "USDC")
type Currency string

const (
	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
	CurrencyUSDC Currency = "USDC"
	CurrencyUSDT Currency = "USDT"
	CurrencySOL  Currency = "SOL"
	CurrencyDAI  Currency = "DAI"
)

// NormalizeCurrency uppercases and trims a currency code
func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// TokenNetwork represents the blockchain network identifier for a tokenized
// listing using CAIP-2 format
type TokenNetwork string

const (
	NetworkEthereumMainnet TokenNetwork = "eip155:1"
	NetworkPolygonMainnet  TokenNetwork = "eip155:137"
	NetworkSolanaMainnet   TokenNetwork = "solana:mainnet"
)

// IsValidTokenNetwork checks if a token network is valid
func IsValidTokenNetwork(n TokenNetwork) bool {
	return n == NetworkEthereumMainnet ||
		n == NetworkPolygonMainnet ||
		n == NetworkSolanaMainnet
}

// InquiryStatus represents the lifecycle state of a listing inquiry
type InquiryStatus string

const (
	InquiryStatusNew     InquiryStatus = "new"
	InquiryStatusRead    InquiryStatus = "read"
	InquiryStatusReplied InquiryStatus = "replied"
)

// IsValidInquiryStatus checks if an inquiry status is valid
func IsValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied:
		return true
	}
	return false
}

// NormalizeAmenity lowercases and trims an amenity tag for matching
func NormalizeAmenity(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
