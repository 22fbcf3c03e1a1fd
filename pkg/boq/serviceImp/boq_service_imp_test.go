package serviceImp_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/boq/service"
	"swc/pkg/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestAddItemDefaults(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	it, err := svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{
		DesignLayerID: c.Layer.ID,
		MaterialID:    &c.Material.ID,
		Description:   " Soil fill ",
		Quantity:      105,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, it.UnitCost, "unit cost comes from the material")
	assert.Equal(t, 5250.0, it.TotalCost)
	assert.Equal(t, "Soil fill", it.Description)

	it, err = svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{
		DesignLayerID: c.Layer.ID,
		MaterialID:    &c.Material.ID,
		Quantity:      10,
		UnitCost:      ptr(0.0),
		TotalCost:     ptr(12.5),
	})
	require.NoError(t, err)
	assert.Zero(t, it.UnitCost, "an explicit zero is kept")
	assert.Equal(t, 12.5, it.TotalCost)

	items, err := svc.ListItems(ctx, c.BOQ.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Material)
	assert.Equal(t, "MAT-T1", items[0].Material.Code)
}

func TestAddItemReferenceErrors(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	_, err := svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: c.Layer.ID + 99, Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: c.Layer.ID, MaterialID: ptr(uint(999)), Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = svc.AddItem(ctx, c.BOQ.ID+99, service.ItemInput{DesignLayerID: c.Layer.ID, Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: c.Layer.ID, Quantity: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// a layer of another design cannot be priced in this BOQ
	other, err := env.App.Services.Designs.CreateDesign(ctx, &entities.Design{SiteID: c.Site.ID, Code: "DES-T2", Name: "Other"})
	require.NoError(t, err)
	layer, err := env.App.Services.Designs.AddLayer(ctx, &entities.DesignLayer{
		DesignID:   other.ID,
		TemplateID: c.Template.ID,
		Name:       "Other pits",
		Parameters: map[string]any{"diameter": 2, "depth": 0.5, "spacing": 1, "numberOfPits": 10},
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: layer.ID, Quantity: 1})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "design_layer_id", ve.Details[0].Field)
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	it, err := svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: c.Layer.ID, MaterialID: &c.Material.ID, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 100.0, it.TotalCost)

	it, err = svc.UpdateItem(ctx, it.ID, service.ItemPatch{Quantity: ptr(3.0)})
	require.NoError(t, err)
	assert.Equal(t, 150.0, it.TotalCost)

	it, err = svc.UpdateItem(ctx, it.ID, service.ItemPatch{Description: ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, 150.0, it.TotalCost)

	it, err = svc.UpdateItem(ctx, it.ID, service.ItemPatch{UnitCost: ptr(40.0), TotalCost: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, 40.0, it.UnitCost)
	assert.Equal(t, 1.0, it.TotalCost)

	require.NoError(t, svc.DeleteItem(ctx, it.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, it.ID), apperr.ErrNotFound)
}

func TestCostRecordsAndSummary(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	_, err := svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{DesignLayerID: c.Layer.ID, MaterialID: &c.Material.ID, Quantity: 105})
	require.NoError(t, err)
	labor, err := svc.AddCostRecord(ctx, c.BOQ.ID, service.CostRecordInput{Amount: 3000, Date: "2024-01-10", Category: "Labor"})
	require.NoError(t, err)
	assert.Equal(t, entities.CostLabor, labor.Category)
	other, err := svc.AddCostRecord(ctx, c.BOQ.ID, service.CostRecordInput{Amount: 250.5, Date: "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, entities.CostOther, other.Category)

	_, err = svc.AddCostRecord(ctx, c.BOQ.ID, service.CostRecordInput{Amount: 1, Category: "fuel"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Details, 2)

	_, err = svc.AddCostRecord(ctx, c.BOQ.ID+50, service.CostRecordInput{Amount: 1, Date: "2024-01-15"})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	sum, err := svc.Summary(ctx, c.BOQ.ID)
	require.NoError(t, err)
	assert.Equal(t, 5250.0, sum.DeclaredTotal)
	assert.Equal(t, 5250.0, sum.ItemsTotal)
	assert.Equal(t, 3250.5, sum.CostsTotal)
	assert.Equal(t, 1999.5, sum.Variance)
	assert.Equal(t, 3000.0, sum.ByCategory["labor"])
	assert.Equal(t, 250.5, sum.ByCategory["other"])
	assert.Equal(t, 1, sum.ItemCount)
	assert.Equal(t, 2, sum.CostRecordCount)

	recs, err := svc.ListCostRecords(ctx, c.BOQ.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, labor.ID, recs[0].ID)

	_, err = svc.ListCostRecords(ctx, c.BOQ.ID+50)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBOQValidation(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	assert.Equal(t, "USD", c.BOQ.Currency)

	_, err := svc.UpdateBOQ(ctx, c.BOQ.ID, service.BOQPatch{Currency: ptr("dollars")})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.UpdateBOQ(ctx, c.BOQ.ID, service.BOQPatch{TotalCost: ptr(-1.0)})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	b, err := svc.UpdateBOQ(ctx, c.BOQ.ID, service.BOQPatch{Currency: ptr("eur"), Notes: ptr("revised")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", b.Currency)
	assert.Equal(t, "revised", b.Notes)

	_, err = svc.CreateBOQ(ctx, &entities.BOQ{DesignID: c.Design.ID + 9})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = svc.ListBOQs(ctx, c.Design.ID+9)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := svc.ListBOQs(ctx, c.Design.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExportWorkbook(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.BOQs

	_, err := svc.AddItem(ctx, c.BOQ.ID, service.ItemInput{
		DesignLayerID: c.Layer.ID, MaterialID: &c.Material.ID, Description: "Soil fill", Quantity: 105,
	})
	require.NoError(t, err)
	_, err = svc.AddCostRecord(ctx, c.BOQ.ID, service.CostRecordInput{Amount: 3000, Date: "2024-01-10", Category: "labor"})
	require.NoError(t, err)

	f, name, err := svc.Export(ctx, c.BOQ.ID)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, fmt.Sprintf("BOQ_%d_USD.xlsx", c.BOQ.ID), name)
	assert.Equal(t, []string{"Items", "Cost Records"}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Layer", cell("Items", "B1"))
	assert.Equal(t, "1. Pits", cell("Items", "B2"))
	assert.Equal(t, "Soil Fill", cell("Items", "C2"))
	assert.Equal(t, "m3", cell("Items", "F2"))
	assert.Equal(t, "5250", cell("Items", "H2"))
	assert.Equal(t, "Total", cell("Items", "A3"))
	assert.Equal(t, "5250", cell("Items", "H3"))

	assert.Equal(t, "2024-01-10", cell("Cost Records", "A2"))
	assert.Equal(t, "labor", cell("Cost Records", "B2"))
	assert.Equal(t, "Total", cell("Cost Records", "A3"))
	assert.Equal(t, "3000", cell("Cost Records", "D3"))

	_, _, err = svc.Export(ctx, c.BOQ.ID+5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
