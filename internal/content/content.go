package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"

	"labequip/storefront/internal/domain"
)

const (
	excerptRunes   = 160
	wordsPerMinute = 200
	allCategories  = "all"
	blockElements  = "p, li, h1, h2, h3, h4, h5, h6, div, br, td, blockquote"
)

// Content serves the blog and the document library. It is immutable after New.
type Content struct {
	posts     []domain.Post
	summaries []domain.PostSummary
	resources []domain.Resource
}

func New(posts []domain.Post, resources []domain.Resource) (*Content, error) {
	c := &Content{
		posts:     posts,
		summaries: make([]domain.PostSummary, 0, len(posts)),
		resources: resources,
	}

	for _, p := range posts {
		summary, err := Summarize(p)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize post %s: %w", p.ID, err)
		}
		c.summaries = append(c.summaries, summary)
	}

	return c, nil
}

// Summarize derives the excerpt and read time of a post from the text of its HTML body
func Summarize(p domain.Post) (domain.PostSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Body))
	if err != nil {
		return domain.PostSummary{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Separate block elements so adjacent paragraphs do not run together.
	doc.Find(blockElements).AppendHtml(" ")

	words := strings.Fields(doc.Text())
	readTime := (len(words) + wordsPerMinute - 1) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}

	return domain.PostSummary{
		ID:       p.ID,
		Title:    p.Title,
		Category: p.Category,
		Date:     p.Date,
		Excerpt:  truncate(strings.Join(words, " "), excerptRunes),
		ReadTime: readTime,
	}, nil
}

// ListPosts returns post summaries in feed order; "all" or an empty category lists everything
func (c *Content) ListPosts(category string) []domain.PostSummary {
	result := make([]domain.PostSummary, 0, len(c.summaries))
	for _, s := range c.summaries {
		if category == "" || category == allCategories || s.Category == category {
			result = append(result, s)
		}
	}
	return result
}

// PostCategories returns the distinct post categories in first-seen order
func (c *Content) PostCategories() []string {
	seen := make(map[string]bool)
	var result []string
	for _, p := range c.posts {
		if !seen[p.Category] {
			seen[p.Category] = true
			result = append(result, p.Category)
		}
	}
	return result
}

func (c *Content) Post(id string) (domain.Post, domain.PostSummary, bool) {
	for i, p := range c.posts {
		if p.ID == id {
			return p, c.summaries[i], true
		}
	}
	return domain.Post{}, domain.PostSummary{}, false
}

// SearchResources matches q against title and product, and case-insensitively against model.
// An empty query returns every resource.
func (c *Content) SearchResources(q string) []domain.Resource {
	q = strings.TrimSpace(q)
	folder := cases.Fold()
	foldedQuery := folder.String(q)

	result := make([]domain.Resource, 0, len(c.resources))
	for _, r := range c.resources {
		if q == "" ||
			strings.Contains(r.Title, q) ||
			strings.Contains(r.Product, q) ||
			strings.Contains(folder.String(r.Model), foldedQuery) {
			result = append(result, r)
		}
	}
	return result
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
