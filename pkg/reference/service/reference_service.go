package service

import (
	"context"

	"swc/entities"
)

type ReferenceService interface {
	IngestText(ctx context.Context, techniqueID uint, in TextInput) (*entities.ReferenceDocument, error)
	// IngestURL fetches an allow-listed page and stores its main text.
	IngestURL(ctx context.Context, techniqueID uint, in URLInput) (*entities.ReferenceDocument, error)
	Search(ctx context.Context, q string, techniqueID uint, k int) ([]Hit, error)
	List(ctx context.Context, techniqueID uint) ([]entities.ReferenceDocument, error)
	// Get returns the document with its chunks in order.
	Get(ctx context.Context, id uint) (*entities.ReferenceDocument, error)
	Delete(ctx context.Context, id uint) error
}

type TextInput struct {
	Title     string `json:"title"`
	Tags      string `json:"tags"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url"`
}

type URLInput struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Tags  string `json:"tags"`
}

type Hit struct {
	ChunkID     uint    `json:"chunk_id"`
	DocumentID  uint    `json:"document_id"`
	TechniqueID uint    `json:"technique_id"`
	Ord         int     `json:"ord"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
	DocTitle    string  `json:"doc_title,omitempty"`
	SourceURL   string  `json:"source_url,omitempty"`
}
