package domain

// Category is the first level of the product taxonomy
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`       // Persian display label
	LabelEn     string `json:"label_en" yaml:"label_en"` // English display label
	Description string `json:"description" yaml:"description"`
}

func (c Category) DisplayLabel(lang Language) string {
	if lang == LanguageEnglish && c.LabelEn != "" {
		return c.LabelEn
	}
	return c.Label
}

// EquipmentType is the second level of the taxonomy; it belongs to exactly one category
type EquipmentType struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`         // Persian display label
	FullName string `json:"full_name" yaml:"full_name"` // English name
	Category string `json:"category" yaml:"category"`   // Parent category ID
}

func (t EquipmentType) DisplayLabel(lang Language) string {
	if lang == LanguageEnglish && t.FullName != "" {
		return t.FullName
	}
	return t.Label
}
