package settlement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sueldos/internal/moneyfmt"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ItemUpdate carries a partial edit to a single line item. Nil fields are
// left untouched.
type ItemUpdate struct {
	Name                   *string `json:"name"`
	Percentage             *string `json:"percentage"`
	Amount                 *string `json:"amount"`
	AppliesPercentage      *bool   `json:"appliesPercentage"`
	CheckedRemunerative    *bool   `json:"checkedRemunerative"`
	CheckedNonRemunerative *bool   `json:"checkedNonRemunerative"`
	RemunerativeAmount     *string `json:"remunerativeAmount"`
	NonRemunerativeAmount  *string `json:"nonRemunerativeAmount"`
}

// Create persists a new draft settlement. Any client-supplied totals are
// discarded and recomputed before the insert.
func (svc *Service) Create(ctx context.Context, s *Settlement) (*Settlement, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if strings.TrimSpace(s.PresentismoPercentage) == "" {
		s.PresentismoPercentage = DefaultPresentismoPercentage
	}
	s.Status = StatusDraft
	svc.ensureItemIDs(s)
	if err := svc.recompute(ctx, s); err != nil {
		return nil, err
	}
	if err := svc.store.Insert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a settlement and recomputes its derived fields. Stored totals
// are display caches only; the employee's hire date may have changed since
// the last write.
func (svc *Service) Get(ctx context.Context, id string) (*Settlement, error) {
	s, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.recompute(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Settlement, int, error) {
	total, err := svc.store.Count(ctx, employeeID)
	if err != nil {
		return nil, 0, err
	}
	items, err := svc.store.List(ctx, employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update replaces the settlement's editable fields and items. Any edit
// reverts a saved settlement to draft.
func (svc *Service) Update(ctx context.Context, s *Settlement) (*Settlement, error) {
	current, err := svc.store.Get(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = current.CreatedAt
	s.Status = StatusDraft
	if strings.TrimSpace(s.PresentismoPercentage) == "" {
		s.PresentismoPercentage = DefaultPresentismoPercentage
	}
	svc.ensureItemIDs(s)
	if err := svc.recompute(ctx, s); err != nil {
		return nil, err
	}
	if err := svc.store.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.store.Delete(ctx, id)
}

// Save marks a settlement as final. Required fields must all be present.
func (svc *Service) Save(ctx context.Context, id string) (*Settlement, error) {
	s, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if missing := s.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingRequired, missing)
	}
	if err := svc.recompute(ctx, s); err != nil {
		return nil, err
	}
	s.Status = StatusSaved
	if err := svc.store.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *Service) AddRemunerativeItem(ctx context.Context, settlementID, name, percentage, amount string, appliesPercentage bool) (*Settlement, error) {
	return svc.mutate(ctx, settlementID, func(s *Settlement) error {
		s.AddRemunerativeItem(name, percentage, amount, appliesPercentage)
		return nil
	})
}

func (svc *Service) AddNonRemunerativeItem(ctx context.Context, settlementID, name, percentage, amount string) (*Settlement, error) {
	return svc.mutate(ctx, settlementID, func(s *Settlement) error {
		s.AddNonRemunerativeItem(name, percentage, amount)
		return nil
	})
}

func (svc *Service) AddDeductionItem(ctx context.Context, settlementID, name, percentage string, checkedRem, checkedNonRem bool, remAmount, nonRemAmount string) (*Settlement, error) {
	return svc.mutate(ctx, settlementID, func(s *Settlement) error {
		s.AddDeductionItem(name, percentage, checkedRem, checkedNonRem, remAmount, nonRemAmount)
		return nil
	})
}

func (svc *Service) UpdateItem(ctx context.Context, settlementID, itemID string, upd ItemUpdate) (*Settlement, error) {
	return svc.mutate(ctx, settlementID, func(s *Settlement) error {
		return applyItemUpdate(s, itemID, upd)
	})
}

// RemoveItem deletes a line item from whichever collection holds it.
// Removing a non-remunerative principal cascades to its derived rows.
func (svc *Service) RemoveItem(ctx context.Context, settlementID, itemID string) (*Settlement, error) {
	return svc.mutate(ctx, settlementID, func(s *Settlement) error {
		if s.RemoveRemunerativeItem(itemID) || s.RemoveNonRemunerativeItem(itemID) || s.RemoveDeductionItem(itemID) {
			return nil
		}
		return fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	})
}

// mutate runs one edit against a freshly loaded settlement, recomputes and
// persists. Every mutation reverts the status to draft.
func (svc *Service) mutate(ctx context.Context, id string, fn func(*Settlement) error) (*Settlement, error) {
	s, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.Status = StatusDraft
	if err := svc.recompute(ctx, s); err != nil {
		return nil, err
	}
	if err := svc.store.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (svc *Service) recompute(ctx context.Context, s *Settlement) error {
	var seniorityStart time.Time
	if s.EmployeeID != "" {
		start, err := svc.store.EmployeeSeniorityStart(ctx, s.EmployeeID)
		if err != nil {
			return err
		}
		seniorityStart = start
	}
	return Recompute(s, seniorityStart)
}

func applyItemUpdate(s *Settlement, itemID string, upd ItemUpdate) error {
	for i := range s.RemunerativeItems {
		item := &s.RemunerativeItems[i]
		if item.ID != itemID {
			continue
		}
		applyString(&item.Name, upd.Name, false)
		applyString(&item.Percentage, upd.Percentage, true)
		applyBool(&item.AppliesPercentage, upd.AppliesPercentage)
		if !item.AppliesPercentage {
			applyString(&item.Amount, upd.Amount, true)
		}
		return nil
	}
	for i := range s.NonRemunerativeItems {
		item := &s.NonRemunerativeItems[i]
		if item.ID != itemID {
			continue
		}
		if item.IsSeniorityRow || item.IsAttendanceRow {
			return fmt.Errorf("item %s: %w", itemID, ErrItemReadOnly)
		}
		applyString(&item.Name, upd.Name, false)
		applyString(&item.Percentage, upd.Percentage, true)
		applyBool(&item.AppliesPercentage, upd.AppliesPercentage)
		if !item.AppliesPercentage {
			applyString(&item.Amount, upd.Amount, true)
		}
		return nil
	}
	for i := range s.DeductionItems {
		item := &s.DeductionItems[i]
		if item.ID != itemID {
			continue
		}
		applyString(&item.Name, upd.Name, false)
		applyString(&item.Percentage, upd.Percentage, true)
		applyBool(&item.CheckedRemunerative, upd.CheckedRemunerative)
		applyBool(&item.CheckedNonRemunerative, upd.CheckedNonRemunerative)
		if !item.CheckedRemunerative {
			applyString(&item.RemunerativeAmount, upd.RemunerativeAmount, true)
		}
		if !item.CheckedNonRemunerative {
			applyString(&item.NonRemunerativeAmount, upd.NonRemunerativeAmount, true)
		}
		return nil
	}
	return fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
}

// ensureItemIDs assigns ids to items that arrived from the client without
// one, so derived-row references always have something to point at.
func (svc *Service) ensureItemIDs(s *Settlement) {
	for i := range s.RemunerativeItems {
		if s.RemunerativeItems[i].ID == "" {
			s.RemunerativeItems[i].ID = uuid.NewString()
		}
	}
	for i := range s.NonRemunerativeItems {
		if s.NonRemunerativeItems[i].ID == "" {
			s.NonRemunerativeItems[i].ID = uuid.NewString()
		}
	}
	for i := range s.DeductionItems {
		if s.DeductionItems[i].ID == "" {
			s.DeductionItems[i].ID = uuid.NewString()
		}
	}
}

func applyString(dst *string, src *string, money bool) {
	if src == nil {
		return
	}
	if money {
		*dst = moneyfmt.FormatString(*src)
		return
	}
	*dst = *src
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
