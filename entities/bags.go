package entities

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bags are never stored as NULL: an absent object is {} and an absent array is [].

func objectBag(m *datatypes.JSONMap) {
	if *m == nil {
		*m = datatypes.JSONMap{}
	}
}

func arrayBag(j *datatypes.JSON) {
	if len(*j) == 0 || string(*j) == "null" {
		*j = datatypes.JSON("[]")
	}
}

// ArrayOf marshals v into an array bag.
func ArrayOf(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func (t *Technique) BeforeSave(*gorm.DB) error {
	objectBag(&t.TechnicalSpecs)
	return nil
}

func (t *DesignTemplate) BeforeSave(*gorm.DB) error {
	objectBag(&t.ParameterSchema)
	objectBag(&t.Outputs)
	return nil
}

func (t *MaintenanceTemplate) BeforeSave(*gorm.DB) error {
	arrayBag(&t.WorkflowSteps)
	objectBag(&t.TechnicalSpecs)
	return nil
}

func (m *Material) BeforeSave(*gorm.DB) error {
	arrayBag(&m.Suppliers)
	return nil
}

func (s *Site) BeforeSave(*gorm.DB) error {
	objectBag(&s.TechnicalSpecs)
	objectBag(&s.SafetyNotes)
	return nil
}

func (st *SiteTechnique) BeforeSave(*gorm.DB) error {
	objectBag(&st.MaintenanceSchedule)
	arrayBag(&st.WorkflowSteps)
	return nil
}

func (m *Metric) BeforeSave(*gorm.DB) error {
	objectBag(&m.TechnicalSpecs)
	return nil
}

func (d *Design) BeforeSave(*gorm.DB) error {
	objectBag(&d.TechnicalSpecs)
	objectBag(&d.SafetyNotes)
	return nil
}

func (l *DesignLayer) BeforeSave(*gorm.DB) error {
	objectBag(&l.Parameters)
	objectBag(&l.TechnicalSpecs)
	arrayBag(&l.WorkflowSteps)
	return nil
}

// IsArray reports whether j is empty or holds a JSON array.
func IsArray(j datatypes.JSON) bool {
	if len(j) == 0 {
		return true
	}
	var v []json.RawMessage
	return json.Unmarshal(j, &v) == nil
}
