package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"swc/config"
	"swc/database"
	"swc/entities"
	"swc/pkg/apperr"
	boqrepo "swc/pkg/boq/repositoryImp"
	siterepo "swc/pkg/site/repositoryImp"
	"swc/pkg/testutil"
)

type graph struct {
	tech   entities.Technique
	tpl    entities.DesignTemplate
	site   entities.Site
	design entities.Design
	layer  entities.DesignLayer
	boq    entities.BOQ
}

func seedGraph(t *testing.T, db *gorm.DB) *graph {
	t.Helper()
	g := &graph{}
	g.tech = entities.Technique{Code: "TECH-DB", Name: "Half Moon"}
	require.NoError(t, db.Create(&g.tech).Error)
	g.tpl = entities.DesignTemplate{Code: "TMPL-DB", Name: "Half Moon Template"}
	require.NoError(t, db.Create(&g.tpl).Error)
	g.site = entities.Site{Name: "Site"}
	require.NoError(t, db.Create(&g.site).Error)
	g.design = entities.Design{SiteID: g.site.ID, Code: "DES-DB", Name: "Design", Status: entities.DesignDraft}
	require.NoError(t, db.Create(&g.design).Error)
	g.layer = entities.DesignLayer{
		DesignID: g.design.ID, TemplateID: g.tpl.ID, TechniqueID: g.tech.ID,
		LayerNumber: 1, Name: "Pits",
	}
	require.NoError(t, db.Create(&g.layer).Error)
	g.boq = entities.BOQ{DesignID: g.design.ID, TotalCost: 100, Currency: "USD"}
	require.NoError(t, db.Create(&g.boq).Error)
	return g
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)

	on, err := database.ForeignKeysEnabled(db)
	require.NoError(t, err)
	assert.True(t, on)

	g := seedGraph(t, db)
	err = db.Create(&entities.DesignLayer{
		DesignID: g.design.ID + 100, TemplateID: g.tpl.ID, TechniqueID: g.tech.ID,
		LayerNumber: 1, Name: "Orphan",
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, apperr.FromDB(err, "design layer", false), apperr.ErrInvalidReference)
}

func TestDeleteReferencedSiteConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	g := seedGraph(t, db)

	err := siterepo.New(db).Delete(context.Background(), g.site.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var n int64
	require.NoError(t, db.Model(&entities.Site{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestDeleteBOQCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	g := seedGraph(t, db)

	require.NoError(t, db.Create(&entities.BOQItem{BOQID: g.boq.ID, DesignLayerID: g.layer.ID, Quantity: 2, UnitCost: 50, TotalCost: 100}).Error)
	require.NoError(t, db.Create(&entities.CostRecord{BOQID: g.boq.ID, Amount: 40, Date: time.Now().UTC(), Category: entities.CostLabor}).Error)

	require.NoError(t, boqrepo.New(db).Delete(context.Background(), g.boq.ID))

	var items, costs int64
	require.NoError(t, db.Model(&entities.BOQItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&entities.CostRecord{}).Count(&costs).Error)
	assert.Zero(t, items)
	assert.Zero(t, costs)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	assert.NoError(t, database.Migrate(db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open.db")
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: path}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	on, err := database.ForeignKeysEnabled(db)
	require.NoError(t, err)
	assert.True(t, on)
}
