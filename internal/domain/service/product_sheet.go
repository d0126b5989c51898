package service

import (
	"io"

	"github.com/shopspring/decimal"
)

// ProductRow is one data row of an imported product spreadsheet.
type ProductRow struct {
	Line        int
	Name        string
	Price       decimal.Decimal
	Description string
	ImageRef    string
}

// ProductSheetReader parses a spreadsheet of products.
type ProductSheetReader interface {
	Read(r io.Reader) ([]ProductRow, error)
}
