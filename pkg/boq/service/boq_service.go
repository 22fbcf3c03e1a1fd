package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"swc/entities"
)

type BOQService interface {
	CreateBOQ(ctx context.Context, b *entities.BOQ) (*entities.BOQ, error)
	GetBOQ(ctx context.Context, id uint) (*entities.BOQ, error)
	ListBOQs(ctx context.Context, designID uint) ([]entities.BOQ, error)
	UpdateBOQ(ctx context.Context, id uint, p BOQPatch) (*entities.BOQ, error)
	DeleteBOQ(ctx context.Context, id uint) error

	AddItem(ctx context.Context, boqID uint, in ItemInput) (*entities.BOQItem, error)
	ListItems(ctx context.Context, boqID uint) ([]entities.BOQItem, error)
	UpdateItem(ctx context.Context, id uint, p ItemPatch) (*entities.BOQItem, error)
	DeleteItem(ctx context.Context, id uint) error

	AddCostRecord(ctx context.Context, boqID uint, in CostRecordInput) (*entities.CostRecord, error)
	ListCostRecords(ctx context.Context, boqID uint) ([]entities.CostRecord, error)
	DeleteCostRecord(ctx context.Context, id uint) error

	Summary(ctx context.Context, boqID uint) (*Summary, error)
	// Export builds a workbook with an "Items" sheet ending in a summary row
	// and a "Cost Records" sheet, and suggests a file name for it.
	Export(ctx context.Context, boqID uint) (*excelize.File, string, error)
}

type BOQPatch struct {
	TotalCost *float64 `json:"total_cost"`
	Currency  *string  `json:"currency"`
	Notes     *string  `json:"notes"`
}

// ItemInput distinguishes an omitted unit_cost or total_cost from zero.
type ItemInput struct {
	DesignLayerID uint     `json:"design_layer_id"`
	MaterialID    *uint    `json:"material_id"`
	TechniqueID   *uint    `json:"technique_id"`
	Description   string   `json:"description"`
	Quantity      float64  `json:"quantity"`
	UnitCost      *float64 `json:"unit_cost"`
	TotalCost     *float64 `json:"total_cost"`
}

type ItemPatch struct {
	DesignLayerID *uint    `json:"design_layer_id"`
	MaterialID    *uint    `json:"material_id"`
	TechniqueID   *uint    `json:"technique_id"`
	Description   *string  `json:"description"`
	Quantity      *float64 `json:"quantity"`
	UnitCost      *float64 `json:"unit_cost"`
	TotalCost     *float64 `json:"total_cost"`
}

type CostRecordInput struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}

type Summary struct {
	BOQID           uint               `json:"boq_id"`
	DesignID        uint               `json:"design_id"`
	Currency        string             `json:"currency"`
	DeclaredTotal   float64            `json:"declared_total"`
	ItemsTotal      float64            `json:"items_total"`
	CostsTotal      float64            `json:"costs_total"`
	ByCategory      map[string]float64 `json:"by_category"`
	Variance        float64            `json:"variance"`
	ItemCount       int                `json:"item_count"`
	CostRecordCount int                `json:"cost_record_count"`
}
