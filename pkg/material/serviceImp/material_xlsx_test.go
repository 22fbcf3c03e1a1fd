package serviceImp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"swc/entities"
	"swc/pkg/apperr"
	boqsvc "swc/pkg/boq/service"
	"swc/pkg/testutil"
)

func workbook(t *testing.T, f *excelize.File) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportRoundTrip(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()
	svc := env.App.Services.Materials

	f, err := svc.ImportTemplate()
	require.NoError(t, err)
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"MAT-NEW", "Mulch", "Organic mulch", "t", 40, ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]any{"MAT-BAD", "Gravel", "", "t", "cheap", ""}))

	res, err := svc.Import(ctx, workbook(t, f))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Zero(t, res.Updated)
	assert.Equal(t, 2, res.Skipped, "blank row 4 and the bad row 5")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 5, res.Errors[0].Row)
	assert.Equal(t, "MAT-BAD", res.Errors[0].Code)
	assert.Contains(t, res.Errors[0].Message, "unit_cost")

	stone, err := svc.GetByCode(ctx, "MAT-XXX")
	require.NoError(t, err)
	assert.Equal(t, 35.5, stone.UnitCost)
	var sups []entities.Supplier
	require.NoError(t, json.Unmarshal(stone.Suppliers, &sups))
	assert.Equal(t, []entities.Supplier{
		{Name: "Local quarry", Contact: "+226 70 00 00 00"},
		{Name: "Village co-op"},
	}, sups)

	// same workbook again changes nothing
	res, err = svc.Import(ctx, workbook(t, f))
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Updated)
	assert.Equal(t, 4, res.Skipped)

	require.NoError(t, f.SetCellValue(sheet, "E3", 42.5))
	res, err = svc.Import(ctx, workbook(t, f))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	mulch, err := svc.GetByCode(ctx, "MAT-NEW")
	require.NoError(t, err)
	assert.Equal(t, 42.5, mulch.UnitCost)
	assert.Equal(t, "Organic mulch", mulch.Description)
}

func TestImportReportsNonFiniteCostPerRow(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()
	svc := env.App.Services.Materials

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Code", "Name", "Unit", "Unit Cost"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"MAT-NAN", "Sand", "m3", "NaN"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"MAT-INF", "Clay", "m3", "+Inf"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"MAT-OK", "Gravel", "t", "12"}))

	res, err := svc.Import(ctx, workbook(t, f))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "MAT-NAN", res.Errors[0].Code)
	assert.Contains(t, res.Errors[0].Message, "unit_cost")
	assert.Equal(t, "MAT-INF", res.Errors[1].Code)

	_, err = svc.GetByCode(ctx, "MAT-NAN")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestImportRejectsBadInput(t *testing.T) {
	env := testutil.Setup(t)
	svc := env.App.Services.Materials

	_, err := svc.Import(context.Background(), strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Code", "Label"}))
	_, err = svc.Import(context.Background(), workbook(t, f))
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Details, 2, "name and unit columns are missing")
}

func TestMaterialSearchAndDelete(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.Materials

	_, err := svc.Create(ctx, &entities.Material{Code: "MAT-T2", Name: "Grass Seeds", Unit: "kg", UnitCost: 100})
	require.NoError(t, err)

	found, err := svc.List(ctx, "soil")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "MAT-T1", found[0].Code)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Create(ctx, &entities.Material{Code: "MAT-T3", Name: "Negative", Unit: "kg", UnitCost: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// a BOQ item holds on to the material
	_, err = env.App.Services.BOQs.AddItem(ctx, c.BOQ.ID, boqItem(c))
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, c.Material.ID), apperr.ErrConflict)
}

func boqItem(c *testutil.Chain) boqsvc.ItemInput {
	return boqsvc.ItemInput{DesignLayerID: c.Layer.ID, MaterialID: &c.Material.ID, Quantity: 1}
}
