package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hHome *HomeHandler, hContent *ContentHandler) {

	// home
	r.Get("/", hHome.Home)

	// content
	r.Route("/api/content", func(r chi.Router) {
		r.Get("/", hContent.List)
		r.Post("/", hContent.Create)
		r.Get("/filter/status/{status}", hContent.FilterByStatus)
		r.Get("/filter/{keyword}", hContent.FilterByTitle)
		r.Get("/{id}", hContent.Get)
		r.Put("/{id}", hContent.Update)
		r.Delete("/{id}", hContent.Delete)
	})
}
