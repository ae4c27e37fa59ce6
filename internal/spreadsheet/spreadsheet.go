// Package spreadsheet converts the asset collection to and from xlsx
// workbooks for the export and import endpoints.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/emmeril/assets/pkg/models"
)

const sheetName = "Assets"

var columns = []string{
	"id", "code", "categoryName", "description", "serialNumber",
	"division", "ownerUsername", "brand", "purchaseDate",
	"quantity", "price", "photoFilename",
	"processor", "ram", "storage", "operatingSystem",
}

// WriteAssets renders the full asset list as a single-sheet workbook.
func WriteAssets(assets []models.Asset) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, asset := range assets {
		row := []interface{}{
			asset.ID,
			asset.Code,
			asset.CategoryName,
			asset.Description,
			asset.SerialNumber,
			asset.Division,
			asset.OwnerUsername,
			asset.Brand,
			asset.PurchaseDate,
			asset.Quantity,
			asset.Price,
			asset.PhotoFilename,
			deref(asset.Processor),
			deref(asset.RAM),
			deref(asset.Storage),
			deref(asset.OperatingSystem),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}

// ReadAssets parses the first sheet of a workbook back into asset records.
// Columns are matched by header name, so column order does not matter.
func ReadAssets(r io.Reader) ([]models.Asset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []models.Asset{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	assets := make([]models.Asset, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		id, err := strconv.ParseInt(cell("id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid id %q", rowNum+2, cell("id"))
		}
		quantity, err := strconv.Atoi(cell("quantity"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity %q", rowNum+2, cell("quantity"))
		}
		price, err := strconv.ParseFloat(cell("price"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", rowNum+2, cell("price"))
		}

		assets = append(assets, models.Asset{
			ID:              id,
			Code:            cell("code"),
			CategoryName:    cell("categoryName"),
			Description:     cell("description"),
			SerialNumber:    cell("serialNumber"),
			Division:        cell("division"),
			OwnerUsername:   cell("ownerUsername"),
			Brand:           cell("brand"),
			PurchaseDate:    cell("purchaseDate"),
			Quantity:        quantity,
			Price:           price,
			PhotoFilename:   cell("photoFilename"),
			Processor:       optional(cell("processor")),
			RAM:             optional(cell("ram")),
			Storage:         optional(cell("storage")),
			OperatingSystem: optional(cell("operatingSystem")),
		})
	}
	return assets, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
