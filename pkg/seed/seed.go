// Package seed resets the database and loads a fixture through the services.
package seed

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"swc/app"
	"swc/entities"
	"swc/pkg/telemetry"
)

// GroupCount is the number of rows created for one entity group.
type GroupCount struct {
	Group string
	Rows  int
}

type Seeder struct {
	db      *gorm.DB
	svc     app.Services
	log     *zap.Logger
	metrics *telemetry.Metrics
}

func New(db *gorm.DB, svc app.Services, log *zap.Logger, m *telemetry.Metrics) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, svc: svc, log: log, metrics: m}
}

// clearOrder lists every table child first.
var clearOrder = []any{
	&entities.CostRecord{},
	&entities.BOQItem{},
	&entities.BOQ{},
	&entities.DesignLayer{},
	&entities.Design{},
	&entities.Metric{},
	&entities.SiteTechnique{},
	&entities.Site{},
	&entities.DesignTemplate{},
	&entities.MaintenanceTemplate{},
	&entities.Material{},
	&entities.ReferenceChunk{},
	&entities.ReferenceDocument{},
	&entities.Technique{},
}

// Clear deletes all rows in one transaction.
func (s *Seeder) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range clearOrder {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// ids maps fixture keys to database ids, one map per kind.
type ids struct {
	mu sync.RWMutex
	m  map[string]map[string]uint
}

func newIDs() *ids { return &ids{m: map[string]map[string]uint{}} }

func (r *ids) put(kind, key string, id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m[kind] == nil {
		r.m[kind] = map[string]uint{}
	}
	r.m[kind][key] = id
}

func (r *ids) get(kind, key string) (uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.m[kind][key]
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", kind, key)
	}
	return id, nil
}

// optional resolves an empty key to nil.
func (r *ids) optional(kind, key string) (*uint, error) {
	if key == "" {
		return nil, nil
	}
	id, err := r.get(kind, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type group struct {
	name string
	n    int
	add  func(ctx context.Context, i int) error
}

// Run clears the database and creates every fixture group in order. Rows of
// one group are created concurrently. It stops at the first failure and
// leaves what was already written in place.
func (s *Seeder) Run(ctx context.Context, fx *Fixture) ([]GroupCount, error) {
	s.log.Info("Starting seed")
	if err := s.Clear(ctx); err != nil {
		return nil, err
	}

	reg := newIDs()
	var out []GroupCount
	for _, g := range s.groups(fx, reg) {
		eg, gctx := errgroup.WithContext(ctx)
		for i := 0; i < g.n; i++ {
			eg.Go(func() error {
				if err := g.add(gctx, i); err != nil {
					return fmt.Errorf("%s[%d]: %w", g.name, i, err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			s.log.Error("Seed failed", zap.String("group", g.name), zap.Error(err))
			return out, err
		}
		if s.metrics != nil {
			s.metrics.SeedRows.WithLabelValues(g.name).Add(float64(g.n))
		}
		s.log.Info("Seeded group", zap.String("group", g.name), zap.Int("rows", g.n))
		out = append(out, GroupCount{Group: g.name, Rows: g.n})
	}
	s.log.Info("Seeding completed")
	return out, nil
}
