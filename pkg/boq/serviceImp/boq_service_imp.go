package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"swc/entities"
	"swc/pkg/apperr"
	repo "swc/pkg/boq/repository"
	"swc/pkg/boq/service"
	designrepo "swc/pkg/design/repository"
	matrepo "swc/pkg/material/repository"
	techrepo "swc/pkg/technique/repository"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

type boqSvc struct {
	boqs       repo.BOQRepository
	items      repo.BOQItemRepository
	costs      repo.CostRecordRepository
	designs    designrepo.DesignRepository
	layers     designrepo.DesignLayerRepository
	materials  matrepo.MaterialRepository
	techniques techrepo.TechniqueRepository
}

type Deps struct {
	BOQs        repo.BOQRepository
	Items       repo.BOQItemRepository
	CostRecords repo.CostRecordRepository
	Designs     designrepo.DesignRepository
	Layers      designrepo.DesignLayerRepository
	Materials   matrepo.MaterialRepository
	Techniques  techrepo.TechniqueRepository
}

func NewBOQService(d Deps) service.BOQService {
	return &boqSvc{
		boqs:       d.BOQs,
		items:      d.Items,
		costs:      d.CostRecords,
		designs:    d.Designs,
		layers:     d.Layers,
		materials:  d.Materials,
		techniques: d.Techniques,
	}
}

// lineTotal is quantity * unit cost rounded to cents.
func lineTotal(qty, unit float64) float64 {
	return decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(unit)).Round(2).InexactFloat64()
}

func validateBOQ(b *entities.BOQ) error {
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if b.Currency == "" {
		b.Currency = "USD"
	}
	var chk apperr.Checker
	chk.Check(b.DesignID != 0, "design_id", "is required")
	chk.NonNegative("total_cost", b.TotalCost)
	chk.Check(currencyRe.MatchString(b.Currency), "currency", "must be a three letter code")
	return chk.Err()
}

func (s *boqSvc) CreateBOQ(ctx context.Context, b *entities.BOQ) (*entities.BOQ, error) {
	b.ID = 0
	if err := validateBOQ(b); err != nil {
		return nil, err
	}
	ok, err := s.designs.Exists(ctx, b.DesignID)
	if err := apperr.MustExist(ok, err, "design_id", b.DesignID); err != nil {
		return nil, err
	}
	if err := s.boqs.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *boqSvc) GetBOQ(ctx context.Context, id uint) (*entities.BOQ, error) {
	return s.boqs.FindDetail(ctx, id)
}

func (s *boqSvc) ListBOQs(ctx context.Context, designID uint) ([]entities.BOQ, error) {
	ok, err := s.designs.Exists(ctx, designID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("design", designID)
	}
	return s.boqs.ListByDesign(ctx, designID)
}

func (s *boqSvc) UpdateBOQ(ctx context.Context, id uint, p service.BOQPatch) (*entities.BOQ, error) {
	b, err := s.boqs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.TotalCost != nil {
		b.TotalCost = *p.TotalCost
	}
	if p.Currency != nil {
		b.Currency = *p.Currency
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if err := validateBOQ(b); err != nil {
		return nil, err
	}
	if err := s.boqs.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *boqSvc) DeleteBOQ(ctx context.Context, id uint) error {
	return s.boqs.Delete(ctx, id)
}

// ---------- items ----------

// resolveItem checks the item's references against boq and fills the unit and
// line costs when they were left out. unitSet and totalSet report whether the
// caller supplied them.
func (s *boqSvc) resolveItem(ctx context.Context, b *entities.BOQ, it *entities.BOQItem, unitSet, totalSet bool) error {
	var chk apperr.Checker
	chk.Check(it.DesignLayerID != 0, "design_layer_id", "is required")
	chk.NonNegative("quantity", it.Quantity)
	if unitSet {
		chk.NonNegative("unit_cost", it.UnitCost)
	}
	if totalSet {
		chk.NonNegative("total_cost", it.TotalCost)
	}
	if err := chk.Err(); err != nil {
		return err
	}

	layer, err := s.layers.FindByID(ctx, it.DesignLayerID)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("design_layer_id %d does not exist: %w", it.DesignLayerID, apperr.ErrInvalidReference)
	}
	if err != nil {
		return err
	}
	if layer.DesignID != b.DesignID {
		return apperr.Invalid("design_layer_id",
			fmt.Sprintf("layer %d belongs to design %d, not %d", layer.ID, layer.DesignID, b.DesignID))
	}

	if it.MaterialID != nil {
		m, err := s.materials.FindByID(ctx, *it.MaterialID)
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("material_id %d does not exist: %w", *it.MaterialID, apperr.ErrInvalidReference)
		}
		if err != nil {
			return err
		}
		if !unitSet {
			it.UnitCost = m.UnitCost
		}
	}
	if it.TechniqueID != nil {
		ok, err := s.techniques.Exists(ctx, *it.TechniqueID)
		if err := apperr.MustExist(ok, err, "technique_id", *it.TechniqueID); err != nil {
			return err
		}
	}
	if !totalSet {
		it.TotalCost = lineTotal(it.Quantity, it.UnitCost)
	}
	return nil
}

// optionalID treats 0 as "no reference".
func optionalID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func (s *boqSvc) AddItem(ctx context.Context, boqID uint, in service.ItemInput) (*entities.BOQItem, error) {
	b, err := s.boqs.FindByID(ctx, boqID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("boq_id %d does not exist: %w", boqID, apperr.ErrInvalidReference)
	}
	if err != nil {
		return nil, err
	}
	it := &entities.BOQItem{
		BOQID:         b.ID,
		DesignLayerID: in.DesignLayerID,
		MaterialID:    optionalID(in.MaterialID),
		TechniqueID:   optionalID(in.TechniqueID),
		Description:   strings.TrimSpace(in.Description),
		Quantity:      in.Quantity,
	}
	if in.UnitCost != nil {
		it.UnitCost = *in.UnitCost
	}
	if in.TotalCost != nil {
		it.TotalCost = *in.TotalCost
	}
	if err := s.resolveItem(ctx, b, it, in.UnitCost != nil, in.TotalCost != nil); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *boqSvc) ListItems(ctx context.Context, boqID uint) ([]entities.BOQItem, error) {
	ok, err := s.boqs.Exists(ctx, boqID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("boq", boqID)
	}
	return s.items.ListByBOQ(ctx, boqID)
}

// UpdateItem recomputes total_cost when quantity or unit_cost change and no
// explicit total is given.
func (s *boqSvc) UpdateItem(ctx context.Context, id uint, p service.ItemPatch) (*entities.BOQItem, error) {
	it, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.boqs.FindByID(ctx, it.BOQID)
	if err != nil {
		return nil, err
	}
	if p.DesignLayerID != nil {
		it.DesignLayerID = *p.DesignLayerID
	}
	if p.MaterialID != nil {
		it.MaterialID = optionalID(p.MaterialID)
	}
	if p.TechniqueID != nil {
		it.TechniqueID = optionalID(p.TechniqueID)
	}
	if p.Description != nil {
		it.Description = strings.TrimSpace(*p.Description)
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.UnitCost != nil {
		it.UnitCost = *p.UnitCost
	}
	if p.TotalCost != nil {
		it.TotalCost = *p.TotalCost
	}
	// an untouched unit cost is kept as stored, not re-read from the material
	recompute := p.TotalCost == nil && (p.Quantity != nil || p.UnitCost != nil)
	if err := s.resolveItem(ctx, b, it, true, !recompute); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *boqSvc) DeleteItem(ctx context.Context, id uint) error {
	return s.items.Delete(ctx, id)
}

// ---------- cost records ----------

func (s *boqSvc) AddCostRecord(ctx context.Context, boqID uint, in service.CostRecordInput) (*entities.CostRecord, error) {
	ok, err := s.boqs.Exists(ctx, boqID)
	if err := apperr.MustExist(ok, err, "boq_id", boqID); err != nil {
		return nil, err
	}
	cat := entities.CostCategory(strings.ToLower(strings.TrimSpace(in.Category)))
	if cat == "" {
		cat = entities.CostOther
	}
	var chk apperr.Checker
	chk.NonNegative("amount", in.Amount)
	chk.Check(cat.Valid(), "category", "unknown value "+string(cat))
	date, err := entities.ParseDate(in.Date)
	switch {
	case err != nil:
		chk.Add("date", err.Error())
	case date == nil:
		chk.Add("date", "is required")
	}
	if err := chk.Err(); err != nil {
		return nil, err
	}
	c := &entities.CostRecord{
		BOQID:       boqID,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        *date,
		Category:    cat,
	}
	if err := s.costs.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *boqSvc) ListCostRecords(ctx context.Context, boqID uint) ([]entities.CostRecord, error) {
	ok, err := s.boqs.Exists(ctx, boqID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("boq", boqID)
	}
	return s.costs.ListByBOQ(ctx, boqID)
}

func (s *boqSvc) DeleteCostRecord(ctx context.Context, id uint) error {
	return s.costs.Delete(ctx, id)
}

// ---------- reporting ----------

func summarize(b *entities.BOQ) *service.Summary {
	items := decimal.Zero
	for _, it := range b.Items {
		items = items.Add(decimal.NewFromFloat(it.TotalCost))
	}
	byCat := make(map[entities.CostCategory]decimal.Decimal, len(entities.CostCategories))
	costs := decimal.Zero
	for _, c := range b.CostRecords {
		amt := decimal.NewFromFloat(c.Amount)
		costs = costs.Add(amt)
		byCat[c.Category] = byCat[c.Category].Add(amt)
	}
	declared := decimal.NewFromFloat(b.TotalCost)

	out := &service.Summary{
		BOQID:           b.ID,
		DesignID:        b.DesignID,
		Currency:        b.Currency,
		DeclaredTotal:   declared.Round(2).InexactFloat64(),
		ItemsTotal:      items.Round(2).InexactFloat64(),
		CostsTotal:      costs.Round(2).InexactFloat64(),
		Variance:        declared.Sub(costs).Round(2).InexactFloat64(),
		ByCategory:      make(map[string]float64, len(entities.CostCategories)),
		ItemCount:       len(b.Items),
		CostRecordCount: len(b.CostRecords),
	}
	for _, cat := range entities.CostCategories {
		out.ByCategory[string(cat)] = byCat[cat].Round(2).InexactFloat64()
	}
	return out
}

func (s *boqSvc) Summary(ctx context.Context, boqID uint) (*service.Summary, error) {
	b, err := s.boqs.FindDetail(ctx, boqID)
	if err != nil {
		return nil, err
	}
	return summarize(b), nil
}
