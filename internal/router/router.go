package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/relandlord/invoice-intake/internal/handler"
	mw "github.com/relandlord/invoice-intake/internal/middleware"
)

func New(staticDir string, invoiceH *handler.InvoiceHandler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Post("/submit_invoice", invoiceH.Submit)

	// Landing page and other static assets
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}
