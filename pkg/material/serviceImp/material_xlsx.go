package serviceImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/material/service"
)

var importHeaders = []string{"Code", "Name", "Description", "Unit", "Unit Cost", "Suppliers"}

func (s *materialSvc) ImportTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Materials"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	widths := []float64{12, 28, 40, 8, 12, 40}
	for i, h := range importHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, bold)
		f.SetColWidth(sheet, col, col, widths[i])
	}
	// one example row, suppliers separated by ';' with an optional (contact)
	example := []any{"MAT-XXX", "Stone (hand-packed)", "", "m3", 35.5, "Local quarry (+226 70 00 00 00); Village co-op"}
	for i, v := range example {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"2", v)
	}
	return f, nil
}

func (s *materialSvc) Import(ctx context.Context, r io.Reader) (*service.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Invalid("file", "cannot read workbook: "+err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, apperr.Invalid("file", "read sheet: "+err.Error())
	}
	res := &service.ImportResult{Errors: []service.RowError{}}
	if len(rows) == 0 {
		return res, nil
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}
	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for n, row := range rows[1:] {
		rowNum := n + 2
		code := get(row, "code")
		if code == "" && get(row, "name") == "" {
			res.Skipped++
			continue
		}

		changed, created, err := s.importRow(ctx, row, get)
		switch {
		case err != nil:
			if !isRowError(err) {
				return nil, err
			}
			res.Skipped++
			res.Errors = append(res.Errors, service.RowError{Row: rowNum, Code: code, Message: err.Error()})
		case created:
			res.Created++
		case changed:
			res.Updated++
		default:
			res.Skipped++
		}
	}
	if res.Created+res.Updated > 0 {
		s.invalidate()
	}
	return res, nil
}

func (s *materialSvc) importRow(ctx context.Context, row []string, get func([]string, string) string) (changed, created bool, err error) {
	code := get(row, "code")

	existing, err := s.r.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return false, false, err
	}

	m := &entities.Material{}
	if existing != nil {
		cp := *existing
		m = &cp
	}
	m.Code = code
	m.Name = get(row, "name")
	m.Unit = get(row, "unit")
	if v := get(row, "description"); v != "" || existing == nil {
		m.Description = v
	}
	if v := get(row, "unit cost"); v != "" {
		cost, perr := strconv.ParseFloat(v, 64)
		if perr != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
			return false, false, apperr.Invalid("unit_cost", fmt.Sprintf("%q is not a number", v))
		}
		m.UnitCost = cost
	}
	if v := get(row, "suppliers"); v != "" {
		js, jerr := entities.ArrayOf(parseSuppliers(v))
		if jerr != nil {
			return false, false, jerr
		}
		m.Suppliers = js
	}
	if err := validate(m); err != nil {
		return false, false, err
	}

	if existing == nil {
		if err := s.r.Create(ctx, m); err != nil {
			return false, false, err
		}
		return true, true, nil
	}
	if sameMaterial(existing, m) {
		return false, false, nil
	}
	if err := s.r.Update(ctx, m); err != nil {
		return false, false, err
	}
	return true, false, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var chk apperr.Checker
	for _, need := range []string{"code", "name", "unit"} {
		if _, ok := cols[need]; !ok {
			chk.Add("header", fmt.Sprintf("missing column %q", need))
		}
	}
	return cols, chk.Err()
}

// parseSuppliers reads "Name (contact); Other".
func parseSuppliers(v string) []entities.Supplier {
	var out []entities.Supplier
	for _, part := range strings.Split(v, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sup := entities.Supplier{Name: part}
		if open := strings.LastIndex(part, "("); open > 0 && strings.HasSuffix(part, ")") {
			sup.Name = strings.TrimSpace(part[:open])
			sup.Contact = strings.TrimSpace(part[open+1 : len(part)-1])
		}
		out = append(out, sup)
	}
	return out
}

func sameMaterial(a, b *entities.Material) bool {
	return a.Code == b.Code && a.Name == b.Name && a.Description == b.Description &&
		a.Unit == b.Unit && a.UnitCost == b.UnitCost && bytes.Equal(a.Suppliers, b.Suppliers)
}

func isRowError(err error) bool {
	return errors.Is(err, apperr.ErrValidation) || errors.Is(err, apperr.ErrConflict)
}
