package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Stock-Lot-Ledger/internal/api/middleware"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/config"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	ledgerService *service.LedgerService,
	ownerAuth *custommiddleware.OwnerAuth,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Everything below acts on behalf of an authenticated owner
		r.Group(func(r chi.Router) {
			r.Use(ownerAuth.Handler)

			r.Route("/portfolio", func(r chi.Router) {
				portfolioHandler := handlers.NewPortfolioHandler(ledgerService)
				r.Get("/", portfolioHandler.Portfolio)
				r.Get("/exists", portfolioHandler.Exists)
			})

			r.Route("/lot", func(r chi.Router) {
				lotHandler := handlers.NewLotHandler(ledgerService)
				r.Post("/", lotHandler.OpenLot)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", lotHandler.GetLot)
					r.Post("/sell", lotHandler.SellLot)
				})
			})

			r.Route("/sale", func(r chi.Router) {
				saleHandler := handlers.NewSaleHandler(ledgerService)
				r.Get("/", saleHandler.Sales)
			})
		})
	})

	return r
}
