package serviceImp

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"swc/entities"
)

var (
	itemHeaders = []string{"#", "Layer", "Material", "Description", "Quantity", "Unit", "Unit Cost", "Total Cost"}
	costHeaders = []string{"Date", "Category", "Description", "Amount"}
)

func headerRow(f *excelize.File, sheet string, headers []string, widths []float64) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
		f.SetColWidth(sheet, col, col, widths[i])
	}
	return nil
}

func (s *boqSvc) Export(ctx context.Context, boqID uint) (*excelize.File, string, error) {
	b, err := s.boqs.FindDetail(ctx, boqID)
	if err != nil {
		return nil, "", err
	}
	layers, err := s.layers.ListByDesign(ctx, b.DesignID)
	if err != nil {
		return nil, "", err
	}
	layerName := make(map[uint]string, len(layers))
	for _, l := range layers {
		layerName[l.ID] = fmt.Sprintf("%d. %s", l.LayerNumber, l.Name)
	}
	sum := summarize(b)

	f := excelize.NewFile()
	sheet := "Items"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}
	if err := headerRow(f, sheet, itemHeaders, []float64{5, 24, 24, 36, 10, 8, 12, 12}); err != nil {
		return nil, "", err
	}
	for i, it := range b.Items {
		row := i + 2
		var material, unit string
		if it.Material != nil {
			material, unit = it.Material.Name, it.Material.Unit
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), layerName[it.DesignLayerID])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), material)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), it.Description)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), it.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), unit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), it.UnitCost)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), it.TotalCost)
	}

	summaryRow := len(b.Items) + 2
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow),
		fmt.Sprintf("Declared %.2f %s, recorded costs %.2f", sum.DeclaredTotal, sum.Currency, sum.CostsTotal))
	f.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), sum.ItemsTotal)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), bold)

	costs := "Cost Records"
	if _, err := f.NewSheet(costs); err != nil {
		return nil, "", err
	}
	if err := headerRow(f, costs, costHeaders, []float64{12, 12, 40, 12}); err != nil {
		return nil, "", err
	}
	for i, c := range b.CostRecords {
		row := i + 2
		f.SetCellValue(costs, fmt.Sprintf("A%d", row), c.Date.Format(entities.DateLayout))
		f.SetCellValue(costs, fmt.Sprintf("B%d", row), string(c.Category))
		f.SetCellValue(costs, fmt.Sprintf("C%d", row), c.Description)
		f.SetCellValue(costs, fmt.Sprintf("D%d", row), c.Amount)
	}
	totalRow := len(b.CostRecords) + 2
	f.SetCellValue(costs, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(costs, fmt.Sprintf("D%d", totalRow), sum.CostsTotal)
	f.SetCellStyle(costs, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("D%d", totalRow), bold)

	return f, fmt.Sprintf("BOQ_%d_%s.xlsx", b.ID, b.Currency), nil
}
