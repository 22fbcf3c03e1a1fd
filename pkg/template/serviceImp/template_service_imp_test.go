package serviceImp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/template/service"
	"swc/pkg/testutil"
)

func TestDesignTemplateSchemaChecks(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.Templates

	_, err := svc.CreateDesignTemplate(ctx, &entities.DesignTemplate{
		Code: "TMPL-BAD", Name: "Broken", ParameterSchema: datatypes.JSONMap{"type": 12},
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "parameter_schema", ve.Details[0].Field)

	ghost := uint(404)
	_, err = svc.CreateDesignTemplate(ctx, &entities.DesignTemplate{Code: "TMPL-G", Name: "Ghost", TechniqueID: &ghost})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	details, err := svc.ValidateParameters(ctx, c.Template.ID, map[string]any{"diameter": 2, "depth": 0.5, "spacing": 1, "numberOfPits": 3})
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)

	details, err = svc.ValidateParameters(ctx, c.Template.ID, map[string]any{"diameter": 0.2, "depth": 0.5, "spacing": 1, "numberOfPits": 3})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "parameters.diameter", details[0].Field)

	_, err = svc.ValidateParameters(ctx, c.Template.ID+10, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTemplateListsFollowWrites(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.Templates

	list, err := svc.ListDesignTemplates(ctx, c.Technique.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.CreateDesignTemplate(ctx, &entities.DesignTemplate{Code: "TMPL-T2", Name: "Second", TechniqueID: &c.Technique.ID})
	require.NoError(t, err)
	list, err = svc.ListDesignTemplates(ctx, c.Technique.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "the cached list is dropped on create")

	none := uint(0)
	tpl, err := svc.UpdateDesignTemplate(ctx, list[1].ID, service.DesignTemplatePatch{TechniqueID: &none})
	require.NoError(t, err)
	assert.Nil(t, tpl.TechniqueID)

	all, err := svc.ListDesignTemplates(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.DeleteDesignTemplate(ctx, c.Template.ID), apperr.ErrConflict, "a layer uses it")
	require.NoError(t, svc.DeleteDesignTemplate(ctx, tpl.ID))
}

func TestMaintenanceTemplates(t *testing.T) {
	env := testutil.Setup(t)
	c := testutil.SeedChain(t, env.App)
	ctx := context.Background()
	svc := env.App.Services.Templates

	_, err := svc.CreateMaintenanceTemplate(ctx, &entities.MaintenanceTemplate{
		Code: "MAINT-X", Name: "Bad steps", WorkflowSteps: datatypes.JSON(`{"step":1}`),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	m, err := svc.CreateMaintenanceTemplate(ctx, &entities.MaintenanceTemplate{
		Code:          "MAINT-001",
		Name:          "Half Moon Maintenance",
		TechniqueID:   &c.Technique.ID,
		WorkflowSteps: datatypes.JSON(`[{"step":1,"task":"Inspection","frequency":"monthly"}]`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, mustJSON(t, m.TechnicalSpecs))

	name := "Half Moon Upkeep"
	m, err = svc.UpdateMaintenanceTemplate(ctx, m.ID, service.MaintenanceTemplatePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, m.Name)

	list, err := svc.ListMaintenanceTemplates(ctx, c.Technique.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, name, list[0].Name)

	require.NoError(t, svc.DeleteMaintenanceTemplate(ctx, m.ID))
	_, err = svc.GetMaintenanceTemplate(ctx, m.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func mustJSON(t *testing.T, m datatypes.JSONMap) string {
	t.Helper()
	b, err := m.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}
