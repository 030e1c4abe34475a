package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aklyuk/banking-ledger/internal/handlers"
	appmw "github.com/aklyuk/banking-ledger/internal/middleware"
)

func NewRoutes(h *handlers.AccountHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(appmw.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/accounts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{accountNumber}", h.Get)
		r.Post("/{accountNumber}/deposit", h.Deposit)
		r.Post("/{accountNumber}/withdraw", h.Withdraw)
		r.Post("/{accountNumber}/transfer", h.Transfer)
	})

	return r
}
