package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/jpalomino/subastas/docs"
	"github.com/jpalomino/subastas/internal/handlers/auction"
	"github.com/jpalomino/subastas/internal/handlers/auth"
	"github.com/jpalomino/subastas/internal/handlers/balance"
	"github.com/jpalomino/subastas/internal/handlers/billing"
	"github.com/jpalomino/subastas/internal/handlers/payment"
	"github.com/jpalomino/subastas/internal/handlers/refund"
	"github.com/jpalomino/subastas/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		BalanceService: balance.NewMockService(ctrl),
		PaymentService: payment.NewMockService(ctrl),
		AuctionService: auction.NewMockService(ctrl),
		BillingService: billing.NewMockService(ctrl),
		RefundService:  refund.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockAuctionHandler := NewMockAuctionHandler(ctrl)
	mockBillingHandler := NewMockBillingHandler(ctrl)
	mockRefundHandler := NewMockRefundHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Submit(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Approve(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Reject(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().GetMovements(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuctionHandler.EXPECT().SetResult(gomock.Any(), gomock.Any()).AnyTimes()
	mockBillingHandler.EXPECT().Complete(gomock.Any(), gomock.Any()).AnyTimes()
	mockRefundHandler.EXPECT().Request(gomock.Any(), gomock.Any()).AnyTimes()
	mockRefundHandler.EXPECT().Manage(gomock.Any(), gomock.Any()).AnyTimes()
	mockRefundHandler.EXPECT().Process(gomock.Any(), gomock.Any()).AnyTimes()
	mockRefundHandler.EXPECT().Cancel(gomock.Any(), gomock.Any()).AnyTimes()
	mockRefundHandler.EXPECT().GetRefunds(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		BalanceHandler: mockBalanceHandler,
		PaymentHandler: mockPaymentHandler,
		AuctionHandler: mockAuctionHandler,
		BillingHandler: mockBillingHandler,
		RefundHandler:  mockRefundHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	auctionID := "4f6b2c35-52a9-4a33-9c2e-0b1d2a3f4e5d"

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"GET", "/api/user/balance", http.StatusUnauthorized},
		{"GET", "/api/user/refunds", http.StatusUnauthorized},
		{"POST", "/api/auctions/" + auctionID + "/payments", http.StatusUnauthorized},
		{"GET", "/api/auctions/" + auctionID + "/payments", http.StatusUnauthorized},
		{"POST", "/api/auctions/" + auctionID + "/billing", http.StatusUnauthorized},
		{"POST", "/api/auctions/" + auctionID + "/refunds", http.StatusUnauthorized},
		{"POST", "/api/auctions/" + auctionID + "/result", http.StatusUnauthorized},
		{"POST", "/api/payments/" + auctionID + "/approve", http.StatusUnauthorized},
		{"POST", "/api/payments/" + auctionID + "/reject", http.StatusUnauthorized},
		{"POST", "/api/refunds/" + auctionID + "/manage", http.StatusUnauthorized},
		{"POST", "/api/refunds/" + auctionID + "/process", http.StatusUnauthorized},
		{"POST", "/api/refunds/" + auctionID + "/cancel", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
