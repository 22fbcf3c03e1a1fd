package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"swc/pkg/apperr"
	boqCtrl "swc/pkg/boq/controller"
	designCtrl "swc/pkg/design/controller"
	healthCtrl "swc/pkg/health/controller"
	materialCtrl "swc/pkg/material/controller"
	metricCtrl "swc/pkg/metric/controller"
	"swc/pkg/middleware"
	referenceCtrl "swc/pkg/reference/controller"
	siteCtrl "swc/pkg/site/controller"
	"swc/pkg/telemetry"
	techniqueCtrl "swc/pkg/technique/controller"
	templateCtrl "swc/pkg/template/controller"
	webCtrl "swc/pkg/web/controller"
)

type Controllers struct {
	Health    healthCtrl.HealthController
	Technique techniqueCtrl.TechniqueController
	Reference referenceCtrl.ReferenceController
	Template  templateCtrl.TemplateController
	Material  materialCtrl.MaterialController
	Site      siteCtrl.SiteController
	Metric    metricCtrl.MetricController
	Design    designCtrl.DesignController
	BOQ       boqCtrl.BOQController
	Web       webCtrl.WebController
}

type Options struct {
	Log         *zap.Logger
	Metrics     *telemetry.Metrics
	CORSOrigins []string
}

func New(e *echo.Echo, opt Options, h Controllers) *echo.Echo {
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.ErrorHandler

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	if opt.Log != nil {
		e.Use(middleware.Logger(opt.Log))
	}
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  opt.CORSOrigins,
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))
	if opt.Metrics != nil {
		e.Use(middleware.Metrics(opt.Metrics))
		e.GET("/metrics", echo.WrapHandler(opt.Metrics.Handler()))
	}

	e.GET("/health", h.Health.Health)
	e.GET("/", h.Web.Index)

	api := e.Group("/api/v1")

	api.GET("/techniques", h.Technique.List)
	api.POST("/techniques", h.Technique.Create)
	api.GET("/techniques/:id", h.Technique.Get)
	api.PATCH("/techniques/:id", h.Technique.Patch)
	api.DELETE("/techniques/:id", h.Technique.Delete)

	// reference library
	api.GET("/techniques/:id/references", h.Reference.List)
	api.POST("/techniques/:id/references", h.Reference.IngestText)
	api.POST("/techniques/:id/references/url", h.Reference.IngestURL)
	api.GET("/references/search", h.Reference.Search)
	api.GET("/references/:id", h.Reference.Get)
	api.DELETE("/references/:id", h.Reference.Delete)

	api.GET("/design-templates", h.Template.ListDesign)
	api.POST("/design-templates", h.Template.CreateDesign)
	api.GET("/design-templates/:id", h.Template.GetDesign)
	api.PATCH("/design-templates/:id", h.Template.PatchDesign)
	api.DELETE("/design-templates/:id", h.Template.DeleteDesign)
	api.POST("/design-templates/:id/validate", h.Template.Validate)

	api.GET("/maintenance-templates", h.Template.ListMaintenance)
	api.POST("/maintenance-templates", h.Template.CreateMaintenance)
	api.GET("/maintenance-templates/:id", h.Template.GetMaintenance)
	api.PATCH("/maintenance-templates/:id", h.Template.PatchMaintenance)
	api.DELETE("/maintenance-templates/:id", h.Template.DeleteMaintenance)

	api.GET("/materials", h.Material.List)
	api.POST("/materials", h.Material.Create)
	api.POST("/materials/import", h.Material.Import)
	api.GET("/materials/import-template", h.Material.ImportTemplate)
	api.GET("/materials/:id", h.Material.Get)
	api.PATCH("/materials/:id", h.Material.Patch)
	api.DELETE("/materials/:id", h.Material.Delete)

	api.GET("/sites", h.Site.List)
	api.POST("/sites", h.Site.Create)
	api.GET("/sites/:id", h.Site.Get)
	api.PATCH("/sites/:id", h.Site.Patch)
	api.DELETE("/sites/:id", h.Site.Delete)
	api.GET("/sites/:id/techniques", h.Site.ListTechniques)
	api.POST("/sites/:id/techniques", h.Site.AddTechnique)
	api.PATCH("/site-techniques/:id", h.Site.PatchTechnique)
	api.DELETE("/site-techniques/:id", h.Site.RemoveTechnique)

	api.GET("/sites/:id/metrics", h.Metric.List)
	api.POST("/sites/:id/metrics", h.Metric.Create)
	api.DELETE("/metrics/:id", h.Metric.Delete)

	api.GET("/sites/:id/designs", h.Design.ListBySite)
	api.POST("/sites/:id/designs", h.Design.Create)
	api.GET("/designs/:id", h.Design.Get)
	api.PATCH("/designs/:id", h.Design.Patch)
	api.DELETE("/designs/:id", h.Design.Delete)
	api.GET("/designs/:id/layers", h.Design.ListLayers)
	api.POST("/designs/:id/layers", h.Design.AddLayer)
	api.PATCH("/design-layers/:id", h.Design.PatchLayer)
	api.DELETE("/design-layers/:id", h.Design.DeleteLayer)

	api.GET("/designs/:id/boqs", h.BOQ.ListByDesign)
	api.POST("/designs/:id/boqs", h.BOQ.Create)
	api.GET("/boqs/:id", h.BOQ.Get)
	api.PATCH("/boqs/:id", h.BOQ.Patch)
	api.DELETE("/boqs/:id", h.BOQ.Delete)
	api.GET("/boqs/:id/summary", h.BOQ.Summary)
	api.GET("/boqs/:id/export", h.BOQ.Export)
	api.GET("/boqs/:id/items", h.BOQ.ListItems)
	api.POST("/boqs/:id/items", h.BOQ.AddItem)
	api.PATCH("/boq-items/:id", h.BOQ.PatchItem)
	api.DELETE("/boq-items/:id", h.BOQ.DeleteItem)
	api.GET("/boqs/:id/cost-records", h.BOQ.ListCostRecords)
	api.POST("/boqs/:id/cost-records", h.BOQ.AddCostRecord)
	api.DELETE("/cost-records/:id", h.BOQ.DeleteCostRecord)

	return e
}
