package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// ProductNameMaxLength mirrors the width of the name column.
	ProductNameMaxLength = 100
	// ProductPriceScale is the number of fractional digits kept for prices.
	ProductPriceScale = 2
	// ProductPriceMaxExponent bounds the decimal exponent of any price; values
	// outside [-ProductPriceMaxExponent, 8] are rejected before rounding.
	ProductPriceMaxExponent = 32
)

// ProductPriceCeiling is the first value that no longer fits numeric(10,2).
var ProductPriceCeiling = decimal.New(1, 8)

// priceText is plain decimal notation; exponents are never accepted.
var priceText = regexp.MustCompile(`^-?\d{1,16}(\.\d{1,16})?$`)

// ParsePrice reads a price typed as plain decimal text such as "12.50".
func ParsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if !priceText.MatchString(raw) {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return price, true
}

// Product belongs to exactly one shop profile.
type Product struct {
	ID            uuid.UUID
	Name          string
	Price         decimal.Decimal
	Description   string
	ImageRef      string
	ShopProfileID uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
