package serviceImp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/technique/service"
	"swc/pkg/testutil"
)

func TestTechniqueCatalog(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()
	svc := env.App.Services.Techniques

	for _, tq := range []entities.Technique{
		{Code: "TECH-001", Name: "Half Moon Water Harvesting", Category: "Water Harvesting"},
		{Code: "TECH-002", Name: "Contour Lines", Category: "Soil Conservation"},
		{Code: "TECH-004", Name: "Pit Cultivation", Category: "Water Harvesting"},
	} {
		_, err := svc.Create(ctx, &tq)
		require.NoError(t, err)
	}

	water, err := svc.List(ctx, "Water Harvesting")
	require.NoError(t, err)
	require.Len(t, water, 2)
	assert.Equal(t, "TECH-001", water[0].Code)

	got, err := svc.GetByCode(ctx, "TECH-002")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(mustMarshal(t, got.TechnicalSpecs)))

	cat := "Water Harvesting"
	_, err = svc.Update(ctx, got.ID, service.TechniquePatch{Category: &cat})
	require.NoError(t, err)
	water, err = svc.List(ctx, "Water Harvesting")
	require.NoError(t, err)
	assert.Len(t, water, 3, "updates drop the cached list")

	dup := "TECH-001"
	_, err = svc.Update(ctx, got.ID, service.TechniquePatch{Code: &dup})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTechniqueDeleteRules(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.Techniques

	assert.ErrorIs(t, svc.Delete(ctx, c.Technique.ID), apperr.ErrConflict)

	lone, err := svc.Create(ctx, &entities.Technique{Code: "TECH-LONE", Name: "Lone"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, lone.ID))
	assert.ErrorIs(t, svc.Delete(ctx, lone.ID), apperr.ErrNotFound)
}

func TestTechniqueDeleteFlushesTemplateLists(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()
	tpls := env.App.Services.Templates

	tq, err := env.App.Services.Techniques.Create(ctx, &entities.Technique{Code: "TECH-TMP", Name: "Temporary"})
	require.NoError(t, err)
	_, err = tpls.CreateDesignTemplate(ctx, &entities.DesignTemplate{Code: "TMPL-TMP", Name: "Bound", TechniqueID: &tq.ID})
	require.NoError(t, err)

	bound, err := tpls.ListDesignTemplates(ctx, tq.ID)
	require.NoError(t, err)
	require.Len(t, bound, 1)
	all, err := tpls.ListDesignTemplates(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, env.App.Services.Techniques.Delete(ctx, tq.ID))

	bound, err = tpls.ListDesignTemplates(ctx, tq.ID)
	require.NoError(t, err)
	assert.Empty(t, bound)
	all, err = tpls.ListDesignTemplates(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].TechniqueID)
}

func mustMarshal(t *testing.T, v interface{ MarshalJSON() ([]byte, error) }) []byte {
	t.Helper()
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	return b
}
