package domain

const (
	// Placeholder shown for listings without photos. Substituted at render
	// time, never persisted.
	DEFAULT_PROPERTY_IMAGE = "https://static.propchain.io/placeholder/property.webp"

	// Reference currency for price normalization. All rate-table entries are
	// quoted against this unit.
	REFERENCE_CURRENCY = "USD"
)
