// Package app wires repositories, services and controllers over one database handle.
package app

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"swc/config"
	"swc/database"
	"swc/pkg/cache"
	"swc/pkg/telemetry"
	"swc/router"

	boqCtrlImp "swc/pkg/boq/controllerImp"
	boqRepoImp "swc/pkg/boq/repositoryImp"
	boqService "swc/pkg/boq/service"
	boqSvcImp "swc/pkg/boq/serviceImp"

	designCtrlImp "swc/pkg/design/controllerImp"
	designRepoImp "swc/pkg/design/repositoryImp"
	designService "swc/pkg/design/service"
	designSvcImp "swc/pkg/design/serviceImp"

	healthCtrlImp "swc/pkg/health/controllerImp"

	materialCtrlImp "swc/pkg/material/controllerImp"
	materialRepoImp "swc/pkg/material/repositoryImp"
	materialService "swc/pkg/material/service"
	materialSvcImp "swc/pkg/material/serviceImp"

	metricCtrlImp "swc/pkg/metric/controllerImp"
	metricRepoImp "swc/pkg/metric/repositoryImp"
	metricService "swc/pkg/metric/service"
	metricSvcImp "swc/pkg/metric/serviceImp"

	referenceCtrlImp "swc/pkg/reference/controllerImp"
	referenceRepoImp "swc/pkg/reference/repositoryImp"
	referenceService "swc/pkg/reference/service"
	referenceSvcImp "swc/pkg/reference/serviceImp"

	siteCtrlImp "swc/pkg/site/controllerImp"
	siteRepoImp "swc/pkg/site/repositoryImp"
	siteService "swc/pkg/site/service"
	siteSvcImp "swc/pkg/site/serviceImp"

	techniqueCtrlImp "swc/pkg/technique/controllerImp"
	techniqueRepoImp "swc/pkg/technique/repositoryImp"
	techniqueService "swc/pkg/technique/service"
	techniqueSvcImp "swc/pkg/technique/serviceImp"

	templateCtrlImp "swc/pkg/template/controllerImp"
	templateRepoImp "swc/pkg/template/repositoryImp"
	templateService "swc/pkg/template/service"
	templateSvcImp "swc/pkg/template/serviceImp"

	webCtrlImp "swc/pkg/web/controllerImp"
)

type Services struct {
	Techniques techniqueService.TechniqueService
	Templates  templateService.TemplateService
	Materials  materialService.MaterialService
	Sites      siteService.SiteService
	Metrics    metricService.MetricService
	Designs    designService.DesignService
	BOQs       boqService.BOQService
	References referenceService.ReferenceService
}

type App struct {
	DB          *gorm.DB
	Services    Services
	Controllers router.Controllers
}

// Build wires everything. m may be nil; catalog caches then skip their metrics.
// client is used for reference URL ingestion; nil gets a default.
func Build(db *gorm.DB, cfg config.AppConfig, m *telemetry.Metrics, client *http.Client) *App {
	// Repos
	techRepo := techniqueRepoImp.New(db)
	dtRepo := templateRepoImp.NewDesignTemplateRepository(db)
	mtRepo := templateRepoImp.NewMaintenanceTemplateRepository(db)
	matRepo := materialRepoImp.New(db)
	siteRepo := siteRepoImp.New(db)
	linkRepo := siteRepoImp.NewSiteTechniqueRepository(db)
	metricRepo := metricRepoImp.New(db)
	designRepo := designRepoImp.New(db)
	layerRepo := designRepoImp.NewDesignLayerRepository(db)
	refRepo := referenceRepoImp.New(db)

	// Services
	tplCache := cache.NewCatalog("templates", cfg.CatalogCacheTTL, m)
	svc := Services{
		Techniques: techniqueSvcImp.NewTechniqueService(techRepo, cache.NewCatalog("techniques", cfg.CatalogCacheTTL, m), tplCache),
		Templates:  templateSvcImp.NewTemplateService(dtRepo, mtRepo, techRepo, tplCache),
		Materials:  materialSvcImp.NewMaterialService(matRepo, cache.NewCatalog("materials", cfg.CatalogCacheTTL, m)),
		Sites:      siteSvcImp.NewSiteService(siteRepo, linkRepo, techRepo),
		Metrics:    metricSvcImp.NewMetricService(metricRepo, siteRepo),
		Designs:    designSvcImp.NewDesignService(designRepo, layerRepo, siteRepo, dtRepo, techRepo),
		BOQs: boqSvcImp.NewBOQService(boqSvcImp.Deps{
			BOQs:        boqRepoImp.New(db),
			Items:       boqRepoImp.NewBOQItemRepository(db),
			CostRecords: boqRepoImp.NewCostRecordRepository(db),
			Designs:     designRepo,
			Layers:      layerRepo,
			Materials:   matRepo,
			Techniques:  techRepo,
		}),
		References: referenceSvcImp.New(refRepo, techRepo, cfg.Reference, client),
	}

	// Controllers
	ctrls := router.Controllers{
		Health:    healthCtrlImp.NewHealthCtrl(db),
		Technique: techniqueCtrlImp.New(svc.Techniques),
		Reference: referenceCtrlImp.New(svc.References),
		Template:  templateCtrlImp.New(svc.Templates),
		Material:  materialCtrlImp.New(svc.Materials),
		Site:      siteCtrlImp.New(svc.Sites),
		Metric:    metricCtrlImp.New(svc.Metrics),
		Design:    designCtrlImp.New(svc.Designs),
		BOQ:       boqCtrlImp.New(svc.BOQs),
		Web:       webCtrlImp.New(cfg.APIBaseURL),
	}
	return &App{DB: db, Services: svc, Controllers: ctrls}
}

// Echo returns a configured server with every route mounted.
func (a *App) Echo(cfg config.AppConfig, log *zap.Logger, m *telemetry.Metrics) *echo.Echo {
	return router.New(echo.New(), router.Options{
		Log:         log,
		Metrics:     m,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}, a.Controllers)
}

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
