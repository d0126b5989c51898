// Package spreadsheet reads product imports from .xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"

	"github.com/xuri/excelize/v2"
)

// MaxImportRows caps the data rows accepted from one workbook.
const MaxImportRows = 500

const (
	columnName        = "name"
	columnPrice       = "price"
	columnDescription = "description"
	columnImage       = "image"
)

type productSheetReader struct{}

// NewProductSheetReader returns a reader for the first sheet of a workbook
// whose header row names the name, price, description and optional image columns.
func NewProductSheetReader() service.ProductSheetReader {
	return &productSheetReader{}
}

func (r *productSheetReader) Read(src io.Reader) ([]service.ProductRow, error) {
	book, err := excelize.OpenReader(src)
	if err != nil {
		return nil, domainerrors.ErrInvalidSheet.WithDetails("The file is not a valid .xlsx workbook.")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, domainerrors.ErrInvalidSheet.WithDetails("The workbook has no sheets.")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, domainerrors.ErrInvalidSheet.WithDetails("The first sheet could not be read.")
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrInvalidSheet.WithDetails("The sheet is empty.")
	}

	columns, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	products := make([]service.ProductRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		if len(products) == MaxImportRows {
			return nil, domainerrors.ErrInvalidSheet.WithDetails(
				fmt.Sprintf("At most %d products can be imported at once.", MaxImportRows))
		}

		rawPrice := cell(row, columns[columnPrice])
		price, ok := entity.ParsePrice(rawPrice)
		if !ok {
			return nil, domainerrors.ErrInvalidSheet.WithDetails(
				fmt.Sprintf("Row %d: price %q is not a number.", line, rawPrice))
		}

		products = append(products, service.ProductRow{
			Line:        line,
			Name:        cell(row, columns[columnName]),
			Price:       price,
			Description: cell(row, columns[columnDescription]),
			ImageRef:    cell(row, columns[columnImage]),
		})
	}

	if len(products) == 0 {
		return nil, domainerrors.ErrInvalidSheet.WithDetails("The sheet has no product rows.")
	}

	return products, nil
}

// headerColumns maps column names to indexes; image is optional.
func headerColumns(header []string) (map[string]int, error) {
	columns := map[string]int{columnImage: -1}
	for i, title := range header {
		key := strings.ToLower(strings.TrimSpace(title))
		switch key {
		case columnName, columnPrice, columnDescription, columnImage:
			columns[key] = i
		}
	}

	for _, required := range []string{columnName, columnPrice, columnDescription} {
		if _, ok := columns[required]; !ok {
			return nil, domainerrors.ErrInvalidSheet.WithDetails(
				fmt.Sprintf("The header row must contain a %q column.", required))
		}
	}

	return columns, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[index])
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}

	return true
}
