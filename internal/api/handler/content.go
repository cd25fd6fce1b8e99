package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labequip/storefront/internal/api/request"
	"labequip/storefront/internal/api/response"
	"labequip/storefront/internal/content"
	"labequip/storefront/internal/domain"
)

type postList struct {
	Categories []string             `json:"categories"`
	Items      []domain.PostSummary `json:"items"`
	Count      int                  `json:"count"`
}

type postDetail struct {
	domain.PostSummary
	Author string `json:"author,omitempty"`
	Body   string `json:"body"`
}

type Content struct {
	content *content.Content
}

func NewContent(c *content.Content) *Content {
	return &Content{content: c}
}

func (h *Content) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.content.ListPosts(r.URL.Query().Get("category"))
	categories := h.content.PostCategories()
	if categories == nil {
		categories = []string{}
	}

	response.WriteJSON(w, http.StatusOK, postList{
		Categories: categories,
		Items:      posts,
		Count:      len(posts),
	})
}

func (h *Content) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, summary, ok := h.content.Post(id)
	if !ok {
		response.WriteError(w, http.StatusNotFound, "post not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, postDetail{
		PostSummary: summary,
		Author:      post.Author,
		Body:        post.Body,
	})
}

func (h *Content) SearchResources(w http.ResponseWriter, r *http.Request) {
	response.WriteList(w, http.StatusOK, h.content.SearchResources(r.URL.Query().Get("q")))
}
