package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed fixtures/seed.yaml
var defaultFixture []byte

// Fixture is the seed document. Techniques, templates, materials and designs
// are referenced by code; sites, layers and BOQs by their fixture ref.
type Fixture struct {
	Techniques           []TechniqueRow           `yaml:"techniques"`
	DesignTemplates      []DesignTemplateRow      `yaml:"design_templates"`
	MaintenanceTemplates []MaintenanceTemplateRow `yaml:"maintenance_templates"`
	Materials            []MaterialRow            `yaml:"materials"`
	Sites                []SiteRow                `yaml:"sites"`
	SiteTechniques       []SiteTechniqueRow       `yaml:"site_techniques"`
	Designs              []DesignRow              `yaml:"designs"`
	DesignLayers         []DesignLayerRow         `yaml:"design_layers"`
	BOQs                 []BOQRow                 `yaml:"boqs"`
	BOQItems             []BOQItemRow             `yaml:"boq_items"`
	Metrics              []MetricRow              `yaml:"metrics"`
	CostRecords          []CostRecordRow          `yaml:"cost_records"`
}

type TechniqueRow struct {
	Code           string            `yaml:"code"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Category       string            `yaml:"category"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
}

type DesignTemplateRow struct {
	Code            string            `yaml:"code"`
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	Technique       string            `yaml:"technique"`
	ParameterSchema datatypes.JSONMap `yaml:"parameter_schema"`
	Outputs         datatypes.JSONMap `yaml:"outputs"`
}

type MaintenanceTemplateRow struct {
	Code           string            `yaml:"code"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Technique      string            `yaml:"technique"`
	WorkflowSteps  []any             `yaml:"workflow_steps"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
}

type MaterialRow struct {
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Unit        string  `yaml:"unit"`
	UnitCost    float64 `yaml:"unit_cost"`
	Suppliers   []any   `yaml:"suppliers"`
}

type SiteRow struct {
	Ref            string            `yaml:"ref"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Location       string            `yaml:"location"`
	Latitude       *float64          `yaml:"latitude"`
	Longitude      *float64          `yaml:"longitude"`
	SlopeClass     string            `yaml:"slope_class"`
	SoilTexture    string            `yaml:"soil_texture"`
	LandUse        string            `yaml:"land_use"`
	Drainage       string            `yaml:"drainage"`
	RainfallBand   string            `yaml:"rainfall_band"`
	GullyState     string            `yaml:"gully_state"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `yaml:"safety_notes"`
}

// key is the name other rows use for this site.
func (r SiteRow) key() string {
	if r.Ref != "" {
		return r.Ref
	}
	return r.Name
}

type SiteTechniqueRow struct {
	Site                string            `yaml:"site"`
	Technique           string            `yaml:"technique"`
	Status              string            `yaml:"status"`
	PlannedDate         string            `yaml:"planned_date"`
	ImplementationDate  string            `yaml:"implementation_date"`
	CompletionDate      string            `yaml:"completion_date"`
	MaintenanceSchedule datatypes.JSONMap `yaml:"maintenance_schedule"`
	WorkflowSteps       []any             `yaml:"workflow_steps"`
	Notes               string            `yaml:"notes"`
}

type DesignRow struct {
	Site           string            `yaml:"site"`
	Code           string            `yaml:"code"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Status         string            `yaml:"status"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
	SafetyNotes    datatypes.JSONMap `yaml:"safety_notes"`
}

type DesignLayerRow struct {
	Ref            string            `yaml:"ref"`
	Design         string            `yaml:"design"`
	Template       string            `yaml:"template"`
	Technique      string            `yaml:"technique"`
	LayerNumber    int               `yaml:"layer_number"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Parameters     datatypes.JSONMap `yaml:"parameters"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
	WorkflowSteps  []any             `yaml:"workflow_steps"`
}

func (r DesignLayerRow) key() string {
	if r.Ref != "" {
		return r.Ref
	}
	return fmt.Sprintf("%s#%d", r.Design, r.LayerNumber)
}

type BOQRow struct {
	Ref       string  `yaml:"ref"`
	Design    string  `yaml:"design"`
	TotalCost float64 `yaml:"total_cost"`
	Currency  string  `yaml:"currency"`
	Notes     string  `yaml:"notes"`
}

type BOQItemRow struct {
	BOQ         string   `yaml:"boq"`
	Layer       string   `yaml:"layer"`
	Material    string   `yaml:"material"`
	Technique   string   `yaml:"technique"`
	Description string   `yaml:"description"`
	Quantity    float64  `yaml:"quantity"`
	UnitCost    *float64 `yaml:"unit_cost"`
	TotalCost   *float64 `yaml:"total_cost"`
}

type MetricRow struct {
	Site           string            `yaml:"site"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Unit           string            `yaml:"unit"`
	Value          float64           `yaml:"value"`
	MeasuredDate   string            `yaml:"measured_date"`
	TechnicalSpecs datatypes.JSONMap `yaml:"technical_specs"`
}

type CostRecordRow struct {
	BOQ         string  `yaml:"boq"`
	Amount      float64 `yaml:"amount"`
	Description string  `yaml:"description"`
	Date        string  `yaml:"date"`
	Category    string  `yaml:"category"`
}

// ParseFixture decodes a YAML document; unknown keys are rejected.
func ParseFixture(b []byte) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// LoadFixture reads path, or the embedded default when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	if path == "" {
		return ParseFixture(defaultFixture)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(b)
}
