package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"labequip/storefront/internal/api/handler"
	mw "labequip/storefront/internal/api/middleware"
	"labequip/storefront/internal/catalog"
	"labequip/storefront/internal/config"
	"labequip/storefront/internal/content"
	"labequip/storefront/internal/rfq"
	"labequip/storefront/internal/taxonomy"
)

// Deps are the components the HTTP API serves
type Deps struct {
	Taxonomy *taxonomy.Taxonomy
	Catalog  *catalog.Catalog
	Content  *content.Content
	Sessions *rfq.Sessions
	Leads    handler.LeadSubmitter
	Session  config.SessionConfig
}

type Server struct {
	router chi.Router
	deps   Deps
}

func NewServer(deps Deps) *Server {
	s := &Server{
		router: chi.NewRouter(),
		deps:   deps,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", handler.Healthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Taxonomy and navigation
		tax := handler.NewTaxonomy(s.deps.Taxonomy)
		r.Get("/taxonomy", tax.Tree)
		r.Get("/taxonomy/types/{key}", tax.Type)

		nav := handler.NewNavigation(s.deps.Taxonomy)
		r.Get("/navigation", nav.Get)

		// Blog and documents
		c := handler.NewContent(s.deps.Content)
		r.Get("/posts", c.ListPosts)
		r.Get("/posts/{id}", c.GetPost)
		r.Get("/resources", c.SearchResources)

		// Everything below reads or writes the visitor's RFQ list
		r.Group(func(r chi.Router) {
			r.Use(mw.Session(s.deps.Session))

			products := handler.NewCatalog(s.deps.Catalog, s.deps.Taxonomy, s.deps.Sessions)
			r.Get("/products", products.List)
			r.Get("/products/{id}", products.Get)

			cart := handler.NewRFQ(s.deps.Sessions, s.deps.Catalog, s.deps.Session)
			r.Get("/rfq", cart.Get)
			r.Post("/rfq/items", cart.Add)
			r.Delete("/rfq/items/{id}", cart.Remove)
			r.Delete("/rfq", cart.Clear)
			r.Delete("/session", cart.EndSession)

			quote := handler.NewQuote(s.deps.Sessions, s.deps.Leads)
			r.Post("/quotes", quote.Submit)
		})
	})
}
