package domain

type Product struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Model        string            `json:"model" yaml:"model"`
	Brand        string            `json:"brand" yaml:"brand"`
	Type         string            `json:"type" yaml:"type"`         // Equipment type key
	Category     string            `json:"category" yaml:"category"` // Must match the type's category
	Applications []string          `json:"applications" yaml:"applications"`
	InStock      bool              `json:"in_stock" yaml:"in_stock"`
	Description  string            `json:"description,omitempty" yaml:"description"`
	Specs        map[string]string `json:"specs,omitempty" yaml:"specs"` // e.g. "flow_rate": "0-500 mL/min"
}

// LineItem projects the product onto an RFQ cart entry. The model is carried as the grade.
func (p Product) LineItem() LineItem {
	return LineItem{
		ID:    p.ID,
		Name:  p.Name,
		Type:  p.Type,
		Grade: p.Model,
	}
}
