package entities

import "time"

// ReferenceDocument is a field manual, guideline or article attached to a technique.
type ReferenceDocument struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TechniqueID uint      `gorm:"not null;index" json:"technique_id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	SourceURL   string    `gorm:"size:1024" json:"source_url"`
	Tags        string    `gorm:"size:256" json:"tags"`
	Chunks      int       `json:"chunks"`
	CreatedAt   time.Time `json:"created_at"`

	Technique *Technique       `gorm:"foreignKey:TechniqueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Parts     []ReferenceChunk `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"parts,omitempty"`
}

func (ReferenceDocument) TableName() string { return "reference_documents" }

type ReferenceChunk struct {
	ID          uint      `gorm:"primaryKey" json:"chunk_id"`
	DocumentID  uint      `gorm:"not null;index" json:"document_id"`
	TechniqueID uint      `gorm:"not null;index" json:"technique_id"`
	Ord         int       `json:"ord"`
	Text        string    `gorm:"type:text" json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ReferenceChunk) TableName() string { return "reference_chunks" }
