package navigation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labequip/storefront/internal/catalog"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/feed"
	"labequip/storefront/internal/taxonomy"
)

func loadTaxonomy(t *testing.T) (*taxonomy.Taxonomy, *feed.Feed) {
	t.Helper()
	f, err := feed.Load("")
	require.NoError(t, err)
	return taxonomy.New(f.Categories, f.Types), f
}

func TestBuild_Structure(t *testing.T) {
	tax, _ := loadTaxonomy(t)

	items := Build(tax, domain.LanguagePersian)
	require.Len(t, items, 4)
	assert.Equal(t, []string{"industrial-equipment", "services", "insights", "about"},
		[]string{items[0].ID, items[1].ID, items[2].ID, items[3].ID})

	equipment := items[0]
	require.Len(t, equipment.Children, 5)

	gas := equipment.Children[0]
	assert.Equal(t, "gas-generators", gas.ID)
	assert.Equal(t, "/products?category=gas-generators", gas.Href)
	assert.Equal(t, "Flame", gas.Icon)
	require.Len(t, gas.Children, 3)
	assert.Equal(t, "/products?type=hydrogen-gen", gas.Children[0].Href)
}

func TestBuild_English(t *testing.T) {
	tax, _ := loadTaxonomy(t)

	items := Build(tax, domain.LanguageEnglish)
	assert.Equal(t, "Industrial Equipment", items[0].Label)
	assert.Equal(t, "Gas Generators", items[0].Children[0].Label)
	assert.Equal(t, "Hydrogen Generator", items[0].Children[0].Children[0].Label)
	assert.Equal(t, "Services", items[1].Label)
}

// Every deep link in the mega-menu must select at least one product.
func TestBuild_DeepLinksResolveToProducts(t *testing.T) {
	tax, f := loadTaxonomy(t)
	cat := catalog.New(f.Products)

	for _, category := range Build(tax, domain.LanguagePersian)[0].Children {
		for _, link := range append([]Item{category}, category.Children...) {
			u, err := url.Parse(link.Href)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(u.Path, "/products"))

			got := cat.Search(catalog.CriteriaFromQuery(u.Query()))
			assert.NotEmpty(t, got, "deep link %s", link.Href)
		}
	}
}
