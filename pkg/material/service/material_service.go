package service

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"swc/entities"
)

type MaterialService interface {
	Create(ctx context.Context, m *entities.Material) (*entities.Material, error)
	Get(ctx context.Context, id uint) (*entities.Material, error)
	GetByCode(ctx context.Context, code string) (*entities.Material, error)
	List(ctx context.Context, q string) ([]entities.Material, error)
	Update(ctx context.Context, id uint, p MaterialPatch) (*entities.Material, error)
	Delete(ctx context.Context, id uint) error

	// Import upserts materials by code from the first sheet of an .xlsx workbook.
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
	// ImportTemplate returns an empty workbook with the import header row.
	ImportTemplate() (*excelize.File, error)
}

type MaterialPatch struct {
	Code        *string         `json:"code"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Unit        *string         `json:"unit"`
	UnitCost    *float64        `json:"unit_cost"`
	Suppliers   *datatypes.JSON `json:"suppliers"`
}

type RowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}
