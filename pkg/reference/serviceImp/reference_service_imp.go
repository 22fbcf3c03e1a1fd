package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"swc/config"
	"swc/entities"
	"swc/pkg/apperr"
	"swc/pkg/reference/repository"
	"swc/pkg/reference/service"
	techrepo "swc/pkg/technique/repository"
)

const (
	chunkRunes    = 1000
	defaultSearch = 6
)

type Svc struct {
	r          repository.ReferenceRepository
	techniques techrepo.TechniqueRepository
	allow      map[string]bool
	maxBytes   int64
	client     *http.Client
}

// New builds the service; a nil client gets a 20 second timeout.
// Redirects are followed only to allow-listed hosts, also for a given client.
func New(r repository.ReferenceRepository, t techrepo.TechniqueRepository, cfg config.ReferenceConfig, client *http.Client) *Svc {
	allow := map[string]bool{}
	for _, h := range cfg.AllowedDomains {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	mb := cfg.MaxBytes
	if mb <= 0 {
		mb = 1500000
	}
	return &Svc{r: r, techniques: t, allow: allow, maxBytes: mb, client: guardRedirects(client, allow)}
}

const maxRedirects = 10

// guardRedirects returns a copy of client that refuses redirect hops to hosts
// outside allow. The caller's client is left untouched.
func guardRedirects(client *http.Client, allow map[string]bool) *http.Client {
	c := *client
	next := client.CheckRedirect
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		host := strings.ToLower(req.URL.Hostname())
		if !allow[host] {
			return fmt.Errorf("redirect to %s not allowed: %w", host, apperr.ErrForbidden)
		}
		if next != nil {
			return next(req, via)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
	return &c
}

var _ service.ReferenceService = (*Svc)(nil)

// chunkText cuts text into pieces of about maxRunes, preferring line breaks.
// A piece without any line break is cut hard at twice the limit.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	var parts []string
	var cur strings.Builder
	count := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
		count = 0
	}
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if (count >= maxRunes && r == '\n') || count >= 2*maxRunes {
			flush()
		}
	}
	flush()
	return parts
}

func (s *Svc) technique(ctx context.Context, id uint) error {
	ok, err := s.techniques.Exists(ctx, id)
	return apperr.MustExist(ok, err, "technique_id", id)
}

func (s *Svc) IngestText(ctx context.Context, techniqueID uint, in service.TextInput) (*entities.ReferenceDocument, error) {
	var chk apperr.Checker
	chk.Require("title", in.Title)
	chk.Require("text", in.Text)
	if err := chk.Err(); err != nil {
		return nil, err
	}
	if err := s.technique(ctx, techniqueID); err != nil {
		return nil, err
	}
	return s.store(ctx, techniqueID, in.Title, in.Tags, in.Text, in.SourceURL)
}

func (s *Svc) store(ctx context.Context, techniqueID uint, title, tags, text, src string) (*entities.ReferenceDocument, error) {
	d := &entities.ReferenceDocument{
		TechniqueID: techniqueID,
		Title:       strings.TrimSpace(title),
		Tags:        strings.TrimSpace(tags),
		SourceURL:   strings.TrimSpace(src),
	}
	pieces := chunkText(text, chunkRunes)
	rows := make([]entities.ReferenceChunk, len(pieces))
	for i, p := range pieces {
		rows[i] = entities.ReferenceChunk{Ord: i, Text: p}
	}
	if err := s.r.CreateDocument(ctx, d, rows); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Svc) IngestURL(ctx context.Context, techniqueID uint, in service.URLInput) (*entities.ReferenceDocument, error) {
	raw := strings.TrimSpace(in.URL)
	if raw == "" {
		return nil, apperr.Invalid("url", "is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperr.Invalid("url", "must be an absolute http(s) url")
	}
	if !s.allow[strings.ToLower(u.Hostname())] {
		return nil, fmt.Errorf("domain %s not allowed: %w", u.Hostname(), apperr.ErrForbidden)
	}
	if err := s.technique(ctx, techniqueID); err != nil {
		return nil, err
	}

	text, title, err := fetchMainText(ctx, s.client, raw, s.maxBytes)
	if errors.Is(err, apperr.ErrForbidden) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrUpstream)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no readable text at %s: %w", raw, apperr.ErrUpstream)
	}
	if in.Title != "" {
		title = in.Title
	}
	if strings.TrimSpace(title) == "" {
		title = u.Hostname()
	}
	return s.store(ctx, techniqueID, title, in.Tags, text, raw)
}

func terms(q string) []string {
	return strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Search scores chunks by the number of query term occurrences.
// Chunks without any occurrence are left out.
func (s *Svc) Search(ctx context.Context, q string, techniqueID uint, k int) ([]service.Hit, error) {
	ts := terms(q)
	if len(ts) == 0 {
		return nil, apperr.Invalid("q", "is required")
	}
	if k <= 0 {
		k = defaultSearch
	}
	chunks, err := s.r.Chunks(ctx, techniqueID)
	if err != nil {
		return nil, err
	}

	hits := []service.Hit{}
	for _, ch := range chunks {
		low := strings.ToLower(ch.Text)
		score := 0
		for _, t := range ts {
			score += strings.Count(low, t)
		}
		if score == 0 {
			continue
		}
		hits = append(hits, service.Hit{
			ChunkID:     ch.ID,
			DocumentID:  ch.DocumentID,
			TechniqueID: ch.TechniqueID,
			Ord:         ch.Ord,
			Text:        ch.Text,
			Score:       float64(score),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}

	seen := map[uint]bool{}
	ids := make([]uint, 0, len(hits))
	for _, h := range hits {
		if !seen[h.DocumentID] {
			seen[h.DocumentID] = true
			ids = append(ids, h.DocumentID)
		}
	}
	meta, err := s.r.DocsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if d, ok := meta[hits[i].DocumentID]; ok {
			hits[i].DocTitle = d.Title
			hits[i].SourceURL = d.SourceURL
		}
	}
	return hits, nil
}

func (s *Svc) List(ctx context.Context, techniqueID uint) ([]entities.ReferenceDocument, error) {
	ok, err := s.techniques.Exists(ctx, techniqueID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("technique", techniqueID)
	}
	return s.r.ListByTechnique(ctx, techniqueID)
}

func (s *Svc) Get(ctx context.Context, id uint) (*entities.ReferenceDocument, error) {
	d, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Parts, err = s.r.ChunksOf(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Svc) Delete(ctx context.Context, id uint) error {
	return s.r.Delete(ctx, id)
}
