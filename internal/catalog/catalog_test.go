package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/feed"
	"labequip/storefront/internal/taxonomy"
)

func TestCatalog_Find(t *testing.T) {
	c := New(testProducts())

	p, ok := c.Find("vp-100")
	require.True(t, ok)
	assert.Equal(t, "Edwards", p.Brand)

	_, ok = c.Find("missing")
	assert.False(t, ok)
	assert.Equal(t, 6, c.Len())
}

func TestCatalog_Search(t *testing.T) {
	c := New(testProducts())

	got := c.Search(Criteria{Category: "gas-detectors", InStockOnly: true})
	assert.Equal(t, []string{"gd-4x"}, ids(got))
}

func TestValidate_EmbeddedFeedIsConsistent(t *testing.T) {
	f, err := feed.Load("")
	require.NoError(t, err)

	tax := taxonomy.New(f.Categories, f.Types)
	assert.NoError(t, Validate(f.Products, tax))
}

func TestValidate_ReportsAllMismatches(t *testing.T) {
	tax := taxonomy.New(
		[]domain.Category{{ID: "gas-generators"}, {ID: "lab-pumps"}},
		[]domain.EquipmentType{
			{Key: "nitrogen-gen", Category: "gas-generators"},
			{Key: "vacuum-pump", Category: "lab-pumps"},
		},
	)

	products := []domain.Product{
		{ID: "ok", Type: "nitrogen-gen", Category: "gas-generators"},
		{ID: "bad-type", Type: "plasma-torch", Category: "gas-generators"},
		{ID: "bad-pair", Type: "vacuum-pump", Category: "gas-generators"},
		{ID: "bad-category", Type: "nitrogen-gen", Category: "spectrometers"},
		{ID: "ok", Type: "nitrogen-gen", Category: "gas-generators"},
		{ID: "", Type: "nitrogen-gen", Category: "gas-generators"},
	}

	err := Validate(products, tax)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Contains(t, err.Error(), `unknown type "plasma-torch"`)
	assert.Contains(t, err.Error(), `type "vacuum-pump" belongs to category "lab-pumps"`)
	assert.Contains(t, err.Error(), `unknown category "spectrometers"`)
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "empty id")

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "bad-type", mismatch.ProductID)
}

func TestValidate_TypeWithUnknownCategory(t *testing.T) {
	tax := taxonomy.New(
		[]domain.Category{{ID: "lab-pumps"}},
		[]domain.EquipmentType{{Key: "orphan", Category: "nowhere"}},
	)

	err := Validate(nil, tax)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `equipment type "orphan": unknown category "nowhere"`)
}

func TestValidate_DuplicateTaxonomyEntries(t *testing.T) {
	tax := taxonomy.New(
		[]domain.Category{{ID: "lab-pumps"}, {ID: "gas-generators"}, {ID: "lab-pumps", LabelEn: "Pumps again"}},
		[]domain.EquipmentType{
			{Key: "vacuum-pump", Category: "lab-pumps"},
			{Key: "vacuum-pump", Category: "gas-generators"},
		},
	)

	err := Validate(nil, tax)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Contains(t, err.Error(), `category "lab-pumps": duplicate id`)
	assert.Contains(t, err.Error(), `equipment type "vacuum-pump": duplicate key`)
}
