package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/donovanclay/texas-holdem/internal/ws"
)

func SetupRoutes(rt *ws.Router) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", rt.Handler())
	return r
}
