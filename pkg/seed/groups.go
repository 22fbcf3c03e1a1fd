package seed

import (
	"context"

	"swc/entities"
	boqService "swc/pkg/boq/service"
)

const (
	kindTechnique = "technique"
	kindTemplate  = "design template"
	kindMaterial  = "material"
	kindSite      = "site"
	kindDesign    = "design"
	kindLayer     = "design layer"
	kindBOQ       = "boq"
)

// groups returns the fixture groups in dependency order.
func (s *Seeder) groups(fx *Fixture, reg *ids) []group {
	return []group{
		{"techniques", len(fx.Techniques), func(ctx context.Context, i int) error {
			r := fx.Techniques[i]
			t, err := s.svc.Techniques.Create(ctx, &entities.Technique{
				Code:           r.Code,
				Name:           r.Name,
				Description:    r.Description,
				Category:       r.Category,
				TechnicalSpecs: r.TechnicalSpecs,
			})
			if err != nil {
				return err
			}
			reg.put(kindTechnique, t.Code, t.ID)
			return nil
		}},
		{"design_templates", len(fx.DesignTemplates), func(ctx context.Context, i int) error {
			r := fx.DesignTemplates[i]
			tech, err := reg.optional(kindTechnique, r.Technique)
			if err != nil {
				return err
			}
			t, err := s.svc.Templates.CreateDesignTemplate(ctx, &entities.DesignTemplate{
				Code:            r.Code,
				Name:            r.Name,
				Description:     r.Description,
				TechniqueID:     tech,
				ParameterSchema: r.ParameterSchema,
				Outputs:         r.Outputs,
			})
			if err != nil {
				return err
			}
			reg.put(kindTemplate, t.Code, t.ID)
			return nil
		}},
		{"maintenance_templates", len(fx.MaintenanceTemplates), func(ctx context.Context, i int) error {
			r := fx.MaintenanceTemplates[i]
			tech, err := reg.optional(kindTechnique, r.Technique)
			if err != nil {
				return err
			}
			steps, err := entities.ArrayOf(orEmpty(r.WorkflowSteps))
			if err != nil {
				return err
			}
			_, err = s.svc.Templates.CreateMaintenanceTemplate(ctx, &entities.MaintenanceTemplate{
				Code:           r.Code,
				Name:           r.Name,
				Description:    r.Description,
				TechniqueID:    tech,
				WorkflowSteps:  steps,
				TechnicalSpecs: r.TechnicalSpecs,
			})
			return err
		}},
		{"materials", len(fx.Materials), func(ctx context.Context, i int) error {
			r := fx.Materials[i]
			suppliers, err := entities.ArrayOf(orEmpty(r.Suppliers))
			if err != nil {
				return err
			}
			m, err := s.svc.Materials.Create(ctx, &entities.Material{
				Code:        r.Code,
				Name:        r.Name,
				Description: r.Description,
				Unit:        r.Unit,
				UnitCost:    r.UnitCost,
				Suppliers:   suppliers,
			})
			if err != nil {
				return err
			}
			reg.put(kindMaterial, m.Code, m.ID)
			return nil
		}},
		{"sites", len(fx.Sites), func(ctx context.Context, i int) error {
			r := fx.Sites[i]
			site, err := s.svc.Sites.CreateSite(ctx, &entities.Site{
				Name:           r.Name,
				Description:    r.Description,
				Location:       r.Location,
				Latitude:       r.Latitude,
				Longitude:      r.Longitude,
				SlopeClass:     entities.SlopeClass(r.SlopeClass),
				SoilTexture:    entities.SoilTexture(r.SoilTexture),
				LandUse:        entities.LandUse(r.LandUse),
				Drainage:       entities.Drainage(r.Drainage),
				RainfallBand:   entities.RainfallBand(r.RainfallBand),
				GullyState:     entities.GullyState(r.GullyState),
				TechnicalSpecs: r.TechnicalSpecs,
				SafetyNotes:    r.SafetyNotes,
			})
			if err != nil {
				return err
			}
			reg.put(kindSite, r.key(), site.ID)
			return nil
		}},
		{"site_techniques", len(fx.SiteTechniques), func(ctx context.Context, i int) error {
			r := fx.SiteTechniques[i]
			siteID, err := reg.get(kindSite, r.Site)
			if err != nil {
				return err
			}
			techID, err := reg.get(kindTechnique, r.Technique)
			if err != nil {
				return err
			}
			st := &entities.SiteTechnique{
				SiteID:              siteID,
				TechniqueID:         techID,
				Status:              entities.SiteTechniqueStatus(r.Status),
				MaintenanceSchedule: r.MaintenanceSchedule,
				Notes:               r.Notes,
			}
			if st.PlannedDate, err = entities.ParseDate(r.PlannedDate); err != nil {
				return err
			}
			if st.ImplementationDate, err = entities.ParseDate(r.ImplementationDate); err != nil {
				return err
			}
			if st.CompletionDate, err = entities.ParseDate(r.CompletionDate); err != nil {
				return err
			}
			if st.WorkflowSteps, err = entities.ArrayOf(orEmpty(r.WorkflowSteps)); err != nil {
				return err
			}
			_, err = s.svc.Sites.AddTechnique(ctx, st)
			return err
		}},
		{"designs", len(fx.Designs), func(ctx context.Context, i int) error {
			r := fx.Designs[i]
			siteID, err := reg.get(kindSite, r.Site)
			if err != nil {
				return err
			}
			d, err := s.svc.Designs.CreateDesign(ctx, &entities.Design{
				SiteID:         siteID,
				Code:           r.Code,
				Name:           r.Name,
				Description:    r.Description,
				Status:         entities.DesignStatus(r.Status),
				TechnicalSpecs: r.TechnicalSpecs,
				SafetyNotes:    r.SafetyNotes,
			})
			if err != nil {
				return err
			}
			reg.put(kindDesign, d.Code, d.ID)
			return nil
		}},
		{"design_layers", len(fx.DesignLayers), func(ctx context.Context, i int) error {
			r := fx.DesignLayers[i]
			designID, err := reg.get(kindDesign, r.Design)
			if err != nil {
				return err
			}
			tplID, err := reg.get(kindTemplate, r.Template)
			if err != nil {
				return err
			}
			var techID uint
			if r.Technique != "" {
				if techID, err = reg.get(kindTechnique, r.Technique); err != nil {
					return err
				}
			}
			steps, err := entities.ArrayOf(orEmpty(r.WorkflowSteps))
			if err != nil {
				return err
			}
			l, err := s.svc.Designs.AddLayer(ctx, &entities.DesignLayer{
				DesignID:       designID,
				TemplateID:     tplID,
				TechniqueID:    techID,
				LayerNumber:    r.LayerNumber,
				Name:           r.Name,
				Description:    r.Description,
				Parameters:     r.Parameters,
				TechnicalSpecs: r.TechnicalSpecs,
				WorkflowSteps:  steps,
			})
			if err != nil {
				return err
			}
			reg.put(kindLayer, r.key(), l.ID)
			return nil
		}},
		{"boqs", len(fx.BOQs), func(ctx context.Context, i int) error {
			r := fx.BOQs[i]
			designID, err := reg.get(kindDesign, r.Design)
			if err != nil {
				return err
			}
			b, err := s.svc.BOQs.CreateBOQ(ctx, &entities.BOQ{
				DesignID:  designID,
				TotalCost: r.TotalCost,
				Currency:  r.Currency,
				Notes:     r.Notes,
			})
			if err != nil {
				return err
			}
			key := r.Ref
			if key == "" {
				key = r.Design
			}
			reg.put(kindBOQ, key, b.ID)
			return nil
		}},
		{"boq_items", len(fx.BOQItems), func(ctx context.Context, i int) error {
			r := fx.BOQItems[i]
			boqID, err := reg.get(kindBOQ, r.BOQ)
			if err != nil {
				return err
			}
			layerID, err := reg.get(kindLayer, r.Layer)
			if err != nil {
				return err
			}
			mat, err := reg.optional(kindMaterial, r.Material)
			if err != nil {
				return err
			}
			tech, err := reg.optional(kindTechnique, r.Technique)
			if err != nil {
				return err
			}
			_, err = s.svc.BOQs.AddItem(ctx, boqID, boqService.ItemInput{
				DesignLayerID: layerID,
				MaterialID:    mat,
				TechniqueID:   tech,
				Description:   r.Description,
				Quantity:      r.Quantity,
				UnitCost:      r.UnitCost,
				TotalCost:     r.TotalCost,
			})
			return err
		}},
		{"metrics", len(fx.Metrics), func(ctx context.Context, i int) error {
			r := fx.Metrics[i]
			siteID, err := reg.get(kindSite, r.Site)
			if err != nil {
				return err
			}
			m := &entities.Metric{
				SiteID:         siteID,
				Name:           r.Name,
				Description:    r.Description,
				Unit:           r.Unit,
				Value:          r.Value,
				TechnicalSpecs: r.TechnicalSpecs,
			}
			measured, err := entities.ParseDate(r.MeasuredDate)
			if err != nil {
				return err
			}
			if measured != nil {
				m.MeasuredDate = *measured
			}
			_, err = s.svc.Metrics.Create(ctx, m)
			return err
		}},
		{"cost_records", len(fx.CostRecords), func(ctx context.Context, i int) error {
			r := fx.CostRecords[i]
			boqID, err := reg.get(kindBOQ, r.BOQ)
			if err != nil {
				return err
			}
			_, err = s.svc.BOQs.AddCostRecord(ctx, boqID, boqService.CostRecordInput{
				Amount:      r.Amount,
				Description: r.Description,
				Date:        r.Date,
				Category:    r.Category,
			})
			return err
		}},
	}
}

// orEmpty keeps a missing list as [] rather than null.
func orEmpty(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}
