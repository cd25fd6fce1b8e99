package navigation

import (
	"net/url"

	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/taxonomy"
)

// Item is one entry of the site menu
type Item struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Href        string `json:"href,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Children    []Item `json:"children,omitempty"`
}

type label struct {
	fa string
	en string
}

func (l label) in(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return l.en
	}
	return l.fa
}

var categoryIcons = map[string]string{
	"gas-generators": "Flame",
	"lab-pumps":      "Droplets",
	"gas-detectors":  "AlertTriangle",
	"flow-meters":    "Activity",
	"plc-equipment":  "Cpu",
}

type staticItem struct {
	id       string
	label    label
	href     string
	children []staticItem
}

var staticSections = []staticItem{
	{
		id: "services", label: label{"خدمات", "Services"}, href: "/services",
		children: []staticItem{
			{id: "consulting", label: label{"مشاوره فنی و انتخاب تجهیزات", "Technical consulting"}, href: "/services#consulting"},
			{id: "installation", label: label{"نصب، راه‌اندازی و کمیسیونینگ", "Installation and commissioning"}, href: "/services#installation"},
			{id: "calibration", label: label{"کالیبراسیون و تعمیرات", "Calibration and repair"}, href: "/services#calibration"},
			{id: "training", label: label{"آموزش و دوره‌های تخصصی", "Training"}, href: "/services#training"},
		},
	},
	{
		id: "insights", label: label{"دانش فنی", "Insights"}, href: "/blog",
		children: []staticItem{
			{id: "technical-articles", label: label{"مقالات تخصصی", "Technical articles"}, href: "/blog?category=technical"},
			{id: "news", label: label{"اخبار صنعت", "Industry news"}, href: "/blog?category=news"},
		},
	},
	{
		id: "about", label: label{"درباره ما", "About"}, href: "/about",
		children: []staticItem{
			{id: "company", label: label{"معرفی شرکت", "Company"}, href: "/about#company"},
			{id: "team", label: label{"تیم ما", "Our team"}, href: "/about#team"},
			{id: "contact", label: label{"تماس با ما", "Contact"}, href: "/contact"},
		},
	},
}

var equipmentRoot = label{"تجهیزات صنعتی", "Industrial Equipment"}

// ProductsHref builds a deep link into the filtered catalog view
func ProductsHref(key, value string) string {
	return "/products?" + url.Values{key: []string{value}}.Encode()
}

// Build returns the full menu: the equipment mega-menu derived from the taxonomy followed by the static sections
func Build(tax *taxonomy.Taxonomy, lang domain.Language) []Item {
	equipment := Item{
		ID:          "industrial-equipment",
		Label:       equipmentRoot.in(lang),
		Href:        "/products",
		Icon:        "Settings",
		Description: label{"مرور کامل تجهیزات ابزار دقیق و اتوماسیون صنعتی", "Browse instrumentation and industrial automation equipment"}.in(lang),
	}

	for _, node := range tax.Tree() {
		categoryItem := Item{
			ID:          node.ID,
			Label:       node.DisplayLabel(lang),
			Href:        ProductsHref("category", node.ID),
			Icon:        categoryIcons[node.ID],
			Description: node.Description,
		}
		for _, et := range node.Types {
			categoryItem.Children = append(categoryItem.Children, Item{
				ID:    et.Key,
				Label: et.DisplayLabel(lang),
				Href:  ProductsHref("type", et.Key),
			})
		}
		equipment.Children = append(equipment.Children, categoryItem)
	}

	items := []Item{equipment}
	for _, section := range staticSections {
		items = append(items, section.build(lang))
	}
	return items
}

func (s staticItem) build(lang domain.Language) Item {
	item := Item{ID: s.id, Label: s.label.in(lang), Href: s.href}
	for _, child := range s.children {
		item.Children = append(item.Children, child.build(lang))
	}
	return item
}
