// Package testutil builds throwaway databases and servers for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"swc/app"
	"swc/config"
	"swc/database"
	"swc/entities"
	"swc/pkg/telemetry"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB      *gorm.DB
	App     *app.App
	Echo    *echo.Echo
	Metrics *telemetry.Metrics
	Config  config.AppConfig
}

// SetupTestDB opens a migrated SQLite file under t.TempDir with foreign keys on.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.OpenSQLite(path, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestConfig() config.AppConfig {
	return config.AppConfig{
		Port:               "0",
		DB:                 config.DatabaseConfig{Driver: "sqlite"},
		Log:                config.LogConfig{Level: "error", Format: "console"},
		CORSAllowedOrigins: []string{"*"},
		CatalogCacheTTL:    time.Minute,
		Reference:          config.ReferenceConfig{MaxBytes: 1 << 20},
	}
}

// Setup wires the whole application over a fresh database. Optional mutators
// adjust the config before wiring.
func Setup(t *testing.T, mutate ...func(*config.AppConfig)) *TestEnv {
	t.Helper()
	cfg := TestConfig()
	for _, f := range mutate {
		f(&cfg)
	}
	db := SetupTestDB(t)
	m := telemetry.New()
	a := app.Build(db, cfg, m, nil)
	return &TestEnv{DB: db, App: a, Echo: a.Echo(cfg, nil, m), Metrics: m, Config: cfg}
}

// DoRequest executes an HTTP request against the test server
func DoRequest(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes a JSON object body.
func ParseResponse(w *httptest.ResponseRecorder) map[string]any {
	var result map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList decodes a JSON array body.
func ParseList(w *httptest.ResponseRecorder) []map[string]any {
	var result []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// HalfMoonSchema is a parameter schema with bounded numbers and a required integer.
func HalfMoonSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diameter":     map[string]any{"type": "number", "minimum": 1, "maximum": 5},
			"depth":        map[string]any{"type": "number", "minimum": 0.3, "maximum": 1},
			"spacing":      map[string]any{"type": "number", "minimum": 0.5, "maximum": 2},
			"numberOfPits": map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []any{"diameter", "depth", "spacing", "numberOfPits"},
	}
}

// Chain is one connected row per entity, from technique down to BOQ.
type Chain struct {
	Technique *entities.Technique
	Template  *entities.DesignTemplate
	Material  *entities.Material
	Site      *entities.Site
	Design    *entities.Design
	Layer     *entities.DesignLayer
	BOQ       *entities.BOQ
}

// SeedChain creates a Chain through the services and fails t on any error.
func SeedChain(t *testing.T, a *app.App) *Chain {
	t.Helper()
	ctx := context.Background()
	svc := a.Services
	c := &Chain{}
	var err error

	must := func(step string) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed %s: %v", step, err)
		}
	}

	c.Technique, err = svc.Techniques.Create(ctx, &entities.Technique{Code: "TECH-T1", Name: "Half Moon", Category: "Water Harvesting"})
	must("technique")
	c.Template, err = svc.Templates.CreateDesignTemplate(ctx, &entities.DesignTemplate{
		Code:            "TMPL-T1",
		Name:            "Half Moon Template",
		TechniqueID:     &c.Technique.ID,
		ParameterSchema: HalfMoonSchema(),
	})
	must("template")
	c.Material, err = svc.Materials.Create(ctx, &entities.Material{Code: "MAT-T1", Name: "Soil Fill", Unit: "m3", UnitCost: 50})
	must("material")
	c.Site, err = svc.Sites.CreateSite(ctx, &entities.Site{Name: "Test Site", SlopeClass: entities.SlopeSteep})
	must("site")
	c.Design, err = svc.Designs.CreateDesign(ctx, &entities.Design{SiteID: c.Site.ID, Code: "DES-T1", Name: "Test Design"})
	must("design")
	c.Layer, err = svc.Designs.AddLayer(ctx, &entities.DesignLayer{
		DesignID:   c.Design.ID,
		TemplateID: c.Template.ID,
		Name:       "Pits",
		Parameters: map[string]any{"diameter": 2.5, "depth": 0.6, "spacing": 1.5, "numberOfPits": 42},
	})
	must("layer")
	c.BOQ, err = svc.BOQs.CreateBOQ(ctx, &entities.BOQ{DesignID: c.Design.ID, TotalCost: 5250})
	must("boq")
	return c
}

// Serve runs a prepared request against e.
func Serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}
