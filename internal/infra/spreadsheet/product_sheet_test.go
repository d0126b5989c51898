package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	domainerrors "shopfront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Reader {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow("Sheet1", axis, &row))
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	return bytes.NewReader(buf.Bytes())
}

func TestProductSheetReader_ReadsRowsByHeader(t *testing.T) {
	src := workbook(t,
		[]any{"Description", "Name", "Price", "Image"},
		[]any{"Soft cotton", "Tee", "19.99", ""},
		[]any{},
		[]any{"Sturdy", "Tote", "14.5", "/static/img/tote.png"},
	)

	rows, err := NewProductSheetReader().Read(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Tee", rows[0].Name)
	assert.Equal(t, "19.99", rows[0].Price.StringFixed(2))
	assert.Equal(t, "Soft cotton", rows[0].Description)
	assert.Empty(t, rows[0].ImageRef)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "/static/img/tote.png", rows[1].ImageRef)
}

func TestProductSheetReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     *bytes.Reader
		details string
	}{
		{
			name:    "missing column",
			src:     workbook(t, []any{"Name", "Price"}, []any{"Tee", "1"}),
			details: `"description" column`,
		},
		{
			name:    "bad price",
			src:     workbook(t, []any{"Name", "Price", "Description"}, []any{"Tee", "cheap", "x"}),
			details: "Row 2",
		},
		{
			name:    "scientific price",
			src:     workbook(t, []any{"Name", "Price", "Description"}, []any{"Tee", "1", "x"}, []any{"Mug", "1e2000", "y"}),
			details: "Row 3",
		},
		{
			name:    "header only",
			src:     workbook(t, []any{"Name", "Price", "Description"}),
			details: "no product rows",
		},
		{
			name:    "not a workbook",
			src:     bytes.NewReader([]byte("name,price\nTee,1")),
			details: "not a valid .xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProductSheetReader().Read(tt.src)
			require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.details)
		})
	}
}

func TestProductSheetReader_RowLimit(t *testing.T) {
	rows := [][]any{{"Name", "Price", "Description"}}
	for i := range MaxImportRows + 1 {
		rows = append(rows, []any{fmt.Sprintf("Item %d", i), "1.00", "x"})
	}

	_, err := NewProductSheetReader().Read(workbook(t, rows...))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "At most"))
}
