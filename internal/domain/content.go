package domain

// Post is a blog article; Body holds trusted HTML from the content feed
type Post struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Author   string `json:"author,omitempty" yaml:"author"`
	Date     string `json:"date" yaml:"date"` // YYYY-MM-DD
	Body     string `json:"body,omitempty" yaml:"body"`
}

// PostSummary is the listing view of a post
type PostSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt"`
	ReadTime int    `json:"read_time_minutes"`
}

// Resource is a downloadable document (catalog, datasheet, manual)
type Resource struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Product     string `json:"product" yaml:"product"`
	Model       string `json:"model" yaml:"model"`
	LastUpdated string `json:"last_updated" yaml:"last_updated"`
}
