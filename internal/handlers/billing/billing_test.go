package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/internal/dto"
	"github.com/jpalomino/subastas/internal/service/billingservice"
	"github.com/jpalomino/subastas/pkg/auth"
)

func NewMock(t *testing.T) (*BillingHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func newRequest(body, auctionParam string, userID int) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auctions/"+auctionParam+"/billing", bytes.NewBufferString(body))
	ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("auctionID", auctionParam)
	return r.WithContext(context.WithValue(ctx, chi.RouteCtxKey, routeCtx))
}

func TestCompleteHandler(t *testing.T) {
	auctionID := uuid.New()
	doc := billingservice.DocumentInfo{Type: "RUC", Number: "20481234567", Name: "Transportes Rivera SAC"}
	body := `{"document_type":"RUC","document_number":"20481234567","document_name":"Transportes Rivera SAC"}`

	tests := []struct {
		name          string
		auctionParam  string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name:         "Guarantee applied to the invoice",
			auctionParam: auctionID.String(),
			body:         body,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Complete(gomock.Any(), 1, auctionID, doc).
					Return(&domain.BalanceSnapshot{
						SaldoTotal:    decimal.RequireFromString("1200"),
						SaldoAplicado: decimal.RequireFromString("1200"),
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid auction id",
			auctionParam:  "not-a-uuid",
			body:          body,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid auction id",
		},
		{
			name:          "Invalid document number",
			auctionParam:  auctionID.String(),
			body:          `{"document_type":"DNI","document_number":"123","document_name":"Carla Mendoza"}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "invalid document number",
		},
		{
			name:         "Billing already completed",
			auctionParam: auctionID.String(),
			body:         body,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Complete(gomock.Any(), 1, auctionID, doc).
					Return(nil, apperrors.Conflict(apperrors.CodeBillingCompleted, "billing already completed"))
			},
			expectedCode:  http.StatusConflict,
			expectedError: apperrors.CodeBillingCompleted,
		},
		{
			name:         "Another user's auction",
			auctionParam: auctionID.String(),
			body:         body,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Complete(gomock.Any(), 1, auctionID, doc).
					Return(nil, apperrors.Forbidden("only the winner may complete billing"))
			},
			expectedCode:  http.StatusForbidden,
			expectedError: apperrors.CodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.Complete(w, newRequest(tt.body, tt.auctionParam, 1))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceSnapshotDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "1200.00", body.SaldoAplicado)
			}
		})
	}
}
