package catalog

import (
	"errors"
	"fmt"

	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/taxonomy"
)

var ErrInconsistent = errors.New("catalog is inconsistent with taxonomy")

// MismatchError describes one product that breaks a catalog invariant
type MismatchError struct {
	ProductID string
	Reason    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("product %q: %s", e.ProductID, e.Reason)
}

// Validate checks every product against the taxonomy and reports all mismatches at once.
// The returned error matches ErrInconsistent and unwraps to the individual *MismatchError values.
func Validate(products []domain.Product, tax *taxonomy.Taxonomy) error {
	var errs []error
	seen := make(map[string]bool, len(products))

	for i, p := range products {
		if p.ID == "" {
			errs = append(errs, &MismatchError{ProductID: fmt.Sprintf("#%d", i), Reason: "empty id"})
			continue
		}
		if seen[p.ID] {
			errs = append(errs, &MismatchError{ProductID: p.ID, Reason: "duplicate id"})
		}
		seen[p.ID] = true

		if _, ok := tax.LookupCategory(p.Category); !ok {
			errs = append(errs, &MismatchError{ProductID: p.ID, Reason: fmt.Sprintf("unknown category %q", p.Category)})
		}

		et, ok := tax.LookupType(p.Type)
		if !ok {
			errs = append(errs, &MismatchError{ProductID: p.ID, Reason: fmt.Sprintf("unknown type %q", p.Type)})
			continue
		}
		if et.Category != p.Category {
			errs = append(errs, &MismatchError{
				ProductID: p.ID,
				Reason:    fmt.Sprintf("type %q belongs to category %q, not %q", p.Type, et.Category, p.Category),
			})
		}
	}

	categoryIDs := make(map[string]bool)
	for _, c := range tax.Categories() {
		if categoryIDs[c.ID] {
			errs = append(errs, fmt.Errorf("category %q: duplicate id", c.ID))
		}
		categoryIDs[c.ID] = true
	}

	typeKeys := make(map[string]bool)
	for _, et := range tax.Types() {
		if typeKeys[et.Key] {
			errs = append(errs, fmt.Errorf("equipment type %q: duplicate key", et.Key))
		}
		typeKeys[et.Key] = true

		if _, ok := tax.LookupCategory(et.Category); !ok {
			errs = append(errs, fmt.Errorf("equipment type %q: unknown category %q", et.Key, et.Category))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d problem(s): %w", ErrInconsistent, len(errs), errors.Join(errs...))
}
