package seed_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swc/entities"
	"swc/pkg/seed"
	tu "swc/pkg/testutil"
)

var wantCounts = []seed.GroupCount{
	{Group: "techniques", Rows: 4},
	{Group: "design_templates", Rows: 2},
	{Group: "maintenance_templates", Rows: 1},
	{Group: "materials", Rows: 4},
	{Group: "sites", Rows: 2},
	{Group: "site_techniques", Rows: 2},
	{Group: "designs", Rows: 2},
	{Group: "design_layers", Rows: 2},
	{Group: "boqs", Rows: 2},
	{Group: "boq_items", Rows: 2},
	{Group: "metrics", Rows: 2},
	{Group: "cost_records", Rows: 2},
}

func TestSeedIsRepeatable(t *testing.T) {
	env := tu.Setup(t)
	ctx := context.Background()

	fx, err := seed.LoadFixture("")
	require.NoError(t, err)
	s := seed.New(env.DB, env.App.Services, nil, env.Metrics)

	got, err := s.Run(ctx, fx)
	require.NoError(t, err)
	assert.Equal(t, wantCounts, got)

	got, err = s.Run(ctx, fx)
	require.NoError(t, err)
	assert.Equal(t, wantCounts, got)

	counts := map[string]any{
		"techniques": &entities.Technique{},
		"materials":  &entities.Material{},
		"designs":    &entities.Design{},
		"boq_items":  &entities.BOQItem{},
	}
	want := map[string]int64{"techniques": 4, "materials": 4, "designs": 2, "boq_items": 2}
	for name, model := range counts {
		var n int64
		require.NoError(t, env.DB.Model(model).Count(&n).Error)
		assert.Equal(t, want[name], n, name)
	}
	assert.Equal(t, 8.0, seededRows(t, env, "techniques"))

	d, err := env.App.Services.Designs.GetDesignByCode(ctx, "DES-001")
	require.NoError(t, err)
	assert.Equal(t, entities.DesignApproved, d.Status)

	boqs, err := env.App.Services.BOQs.ListBOQs(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, boqs, 1)
	sum, err := env.App.Services.BOQs.Summary(ctx, boqs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5250.0, sum.ItemsTotal)
	assert.Equal(t, 5250.0, sum.CostsTotal)
	assert.Zero(t, sum.Variance)
}

func TestSeedBagsSurviveReload(t *testing.T) {
	env := tu.Setup(t)
	ctx := context.Background()
	fx, err := seed.LoadFixture("")
	require.NoError(t, err)
	_, err = seed.New(env.DB, env.App.Services, nil, nil).Run(ctx, fx)
	require.NoError(t, err)

	asJSON := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return string(b)
	}

	var site entities.Site
	require.NoError(t, env.DB.Where("name = ?", "Arid Region Test Site").First(&site).Error)
	assert.JSONEq(t, `{
		"hazards": ["flash floods", "rock falls"],
		"mitigations": ["early warning system", "stabilization works"]
	}`, asJSON(site.SafetyNotes))
	assert.JSONEq(t, `{"elevation": 1200, "soilDepth": 0.8, "vegetationCover": 25}`, asJSON(site.TechnicalSpecs))

	var link entities.SiteTechnique
	require.NoError(t, env.DB.Where("site_id = ?", site.ID).First(&link).Error)
	assert.JSONEq(t, `{"frequency": "monthly", "nextDue": "2024-03-15"}`, asJSON(link.MaintenanceSchedule))

	var tpl entities.DesignTemplate
	require.NoError(t, env.DB.Where("code = ?", "TMPL-002").First(&tpl).Error)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"siteArea": {"type": "number", "description": "Site area in hectares"},
			"slope": {"type": "number", "description": "Average slope in percent"},
			"boundHeight": {"type": "number", "description": "Bund height in meters"}
		},
		"required": ["siteArea", "slope", "boundHeight"]
	}`, asJSON(tpl.ParameterSchema))

	var mat entities.Material
	require.NoError(t, env.DB.Where("code = ?", "MAT-001").First(&mat).Error)
	assert.JSONEq(t, `[
		{"name": "Local Supplier A", "contact": "supplier-a@example.com"},
		{"name": "Local Supplier B", "contact": "supplier-b@example.com"}
	]`, string(mat.Suppliers))
}

func TestParseFixtureRejectsUnknownFields(t *testing.T) {
	_, err := seed.ParseFixture([]byte("techniques:\n  - code: T\n    colour: red\n"))
	assert.Error(t, err)
}

func TestSeedFailsOnDanglingReference(t *testing.T) {
	env := tu.Setup(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sites:
  - ref: a
    name: Site A
designs:
  - site: nowhere
    code: DES-9
    name: Lost
`), 0o644))

	fx, err := seed.LoadFixture(path)
	require.NoError(t, err)
	got, err := seed.New(env.DB, env.App.Services, nil, nil).Run(context.Background(), fx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
	assert.Contains(t, got, seed.GroupCount{Group: "sites", Rows: 1})
}

func seededRows(t *testing.T, env *tu.TestEnv, group string) float64 {
	t.Helper()
	families, err := env.Metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "swc_seed_rows_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "group" && l.GetValue() == group {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
