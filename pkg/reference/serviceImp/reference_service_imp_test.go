package serviceImp_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swc/config"
	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/reference/service"
	"swc/pkg/testutil"
)

func allowLocal(cfg *config.AppConfig) {
	cfg.Reference.AllowedDomains = []string{"127.0.0.1"}
}

func TestIngestTextAndSearch(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()
	svc := env.App.Services.References

	tech, err := env.App.Services.Techniques.Create(ctx, &entities.Technique{Code: "TECH-R1", Name: "Half Moon"})
	require.NoError(t, err)
	other, err := env.App.Services.Techniques.Create(ctx, &entities.Technique{Code: "TECH-R2", Name: "Stone Lines"})
	require.NoError(t, err)

	body := strings.Repeat("Half moon pits catch runoff on degraded land.\n", 40) +
		strings.Repeat("Maintenance removes sediment after each rainy season.\n", 40)
	doc, err := svc.IngestText(ctx, tech.ID, service.TextInput{Title: "Half moon guide", Text: body, Tags: "water"})
	require.NoError(t, err)
	_, err = svc.IngestText(ctx, other.ID, service.TextInput{Title: "Stone lines", Text: "Stone lines slow runoff on gentle slopes."})
	require.NoError(t, err)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Greater(t, len(got.Parts), 1)
	for i, p := range got.Parts {
		assert.Equal(t, i, p.Ord)
	}

	hits, err := svc.Search(ctx, "sediment", tech.ID, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Half moon guide", hits[0].DocTitle)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	assert.Contains(t, hits[0].Text, "sediment")

	hits, err = svc.Search(ctx, "runoff slopes", 0, 0)
	require.NoError(t, err)
	techs := map[uint]bool{}
	for _, h := range hits {
		techs[h.TechniqueID] = true
	}
	assert.True(t, techs[other.ID], "technique 0 searches every technique")

	hits, err = svc.Search(ctx, "runoff", other.ID, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, other.ID, hits[0].TechniqueID)

	hits, err = svc.Search(ctx, "terraces", tech.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = svc.Search(ctx, "  ", tech.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	docs, err := svc.List(ctx, tech.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, svc.Delete(ctx, doc.ID))
	assert.ErrorIs(t, svc.Delete(ctx, doc.ID), apperr.ErrNotFound)
	hits, err = svc.Search(ctx, "sediment", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, hits, "chunks go with their document")
}

func TestIngestTextValidation(t *testing.T) {
	env := testutil.Setup(t)
	svc := env.App.Services.References

	_, err := svc.IngestText(context.Background(), 1, service.TextInput{})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Details, 2)

	_, err = svc.IngestText(context.Background(), 99, service.TextInput{Title: "t", Text: "x"})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = svc.List(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIngestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><body><main></main></body></html>`))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Zai pits</title></head><body><article>
<h2>Zai</h2><p>Small planting pits filled with compost.</p></article></body></html>`))
	}))
	defer srv.Close()

	env := testutil.Setup(t, allowLocal)
	ctx := context.Background()
	svc := env.App.Services.References
	tech, err := env.App.Services.Techniques.Create(ctx, &entities.Technique{Code: "TECH-R3", Name: "Zai"})
	require.NoError(t, err)

	doc, err := svc.IngestURL(ctx, tech.ID, service.URLInput{URL: srv.URL + "/zai", Tags: "pits"})
	require.NoError(t, err)
	assert.Equal(t, "Zai pits", doc.Title)
	assert.Equal(t, srv.URL+"/zai", doc.SourceURL)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Parts, 1)
	assert.Equal(t, "Zai\nSmall planting pits filled with compost.", got.Parts[0].Text)

	_, err = svc.IngestURL(ctx, tech.ID, service.URLInput{URL: srv.URL + "/empty"})
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	_, err = svc.IngestURL(ctx, tech.ID, service.URLInput{URL: "https://example.com/zai"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.IngestURL(ctx, tech.ID, service.URLInput{URL: "ftp://127.0.0.1/file"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestIngestURLRedirects(t *testing.T) {
	internal := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Host != "" && strings.HasPrefix(r.Host, "localhost:"):
			internal = true
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("internal page"))
		case r.URL.Path == "/moved":
			http.Redirect(w, r, "/zai", http.StatusFound)
		case r.URL.Path == "/away":
			port := r.Context().Value(http.LocalAddrContextKey).(net.Addr).(*net.TCPAddr).Port
			http.Redirect(w, r, fmt.Sprintf("http://localhost:%d/secret", port), http.StatusFound)
		default:
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("Zai pits hold compost."))
		}
	}))
	defer srv.Close()

	env := testutil.Setup(t, allowLocal)
	ctx := context.Background()
	svc := env.App.Services.References
	tech, err := env.App.Services.Techniques.Create(ctx, &entities.Technique{Code: "TECH-R4", Name: "Zai"})
	require.NoError(t, err)

	doc, err := svc.IngestURL(ctx, tech.ID, service.URLInput{URL: srv.URL + "/moved"})
	require.NoError(t, err)
	assert.Equal(t, "Zai pits hold compost.", doc.Title)

	_, err = svc.IngestURL(ctx, tech.ID, service.URLInput{URL: srv.URL + "/away"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.False(t, internal, "a host outside the allow-list is never requested")

	docs, err := svc.List(ctx, tech.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
