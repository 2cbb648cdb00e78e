package handlers

import (
	"net/http"

	_ "github.com/jpalomino/subastas/docs"
	"github.com/jpalomino/subastas/internal/domain"
	auctionhandlers "github.com/jpalomino/subastas/internal/handlers/auction"
	authhandlers "github.com/jpalomino/subastas/internal/handlers/auth"
	balancehandlers "github.com/jpalomino/subastas/internal/handlers/balance"
	billinghandlers "github.com/jpalomino/subastas/internal/handlers/billing"
	paymenthandlers "github.com/jpalomino/subastas/internal/handlers/payment"
	refundhandlers "github.com/jpalomino/subastas/internal/handlers/refund"
	"github.com/jpalomino/subastas/internal/service"
	"github.com/jpalomino/subastas/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMovements(w http.ResponseWriter, r *http.Request)
}

type AuctionHandler interface {
	SetResult(w http.ResponseWriter, r *http.Request)
}

type BillingHandler interface {
	Complete(w http.ResponseWriter, r *http.Request)
}

type RefundHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Manage(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetRefunds(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	PaymentHandler PaymentHandler
	AuctionHandler AuctionHandler
	BillingHandler BillingHandler
	RefundHandler  RefundHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		AuctionHandler: auctionhandlers.New(s.AuctionService),
		BillingHandler: billinghandlers.New(s.BillingService),
		RefundHandler:  refundhandlers.New(s.RefundService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Get("/user/balance", h.BalanceHandler.GetBalance)
			r.Get("/user/refunds", h.RefundHandler.GetRefunds)

			r.Route("/auctions/{auctionID}", func(r chi.Router) {
				r.Post("/payments", h.PaymentHandler.Submit)
				r.Post("/billing", h.BillingHandler.Complete)
				r.Post("/refunds", h.RefundHandler.Request)
			})
			r.Post("/refunds/{refundID}/cancel", h.RefundHandler.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))

				r.Get("/auctions/{auctionID}/payments", h.PaymentHandler.GetMovements)
				r.Post("/auctions/{auctionID}/result", h.AuctionHandler.SetResult)
				r.Post("/payments/{movementID}/approve", h.PaymentHandler.Approve)
				r.Post("/payments/{movementID}/reject", h.PaymentHandler.Reject)
				r.Post("/refunds/{refundID}/manage", h.RefundHandler.Manage)
				r.Post("/refunds/{refundID}/process", h.RefundHandler.Process)
			})
		})
	})

	return r
}
