package schema

import (
	"time"

	"github.com/propchain/propchain-api/internal/domain"
)

// ExchangeRate represents the exchange_rates table - the latest USD price
// snapshot per currency, written by the rates poller.
type ExchangeRate struct {
	// Currency is the crypto currency code (e.g., "BTC")
	Currency domain.Currency `gorm:"column:currency;primaryKey;type:text"`
	// USDPrice is the price of one whole unit in USD
	USDPrice float64 `gorm:"column:usd_price;not null"`
	// FetchedAt is when the rate was obtained from the feed
	FetchedAt time.Time `gorm:"column:fetched_at;not null;default:now()"`
}

// TableName specifies the table name for the ExchangeRate model
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
