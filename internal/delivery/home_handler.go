package delivery

import (
	"net/http"

	"github.com/Vovarama1992/content-calendar/internal/config"
	"github.com/go-chi/render"
)

type HomeHandler struct {
	home config.HomeConfig
}

func NewHomeHandler(home config.HomeConfig) *HomeHandler {
	return &HomeHandler{home: home}
}

// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"welcomeMessage": h.home.WelcomeMessage,
		"about":          h.home.About,
	})
}
