package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repairdesk/internal/adapter/http/handlers/mocks"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

// withPrincipal stands in for the auth middleware.
func withPrincipal(p middleware.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetPrincipal(c, p)
		c.Next()
	}
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.POST("/v1/payments/:order_id", h.CreatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/o-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload in mock mode falls back to empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, true)

		r := gin.New()
		r.POST("/v1/payments/:order_id", h.CreatePayment)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "o-1", entities.PaymentKindSettlement, json.RawMessage("{}")).
			Return(entities.Payment{ID: "pay-1", OrderID: "o-1", Status: entities.PaymentStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/o-1", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.POST("/v1/payments/:order_id", h.CreatePayment)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "o-1", entities.PaymentKindSettlement, gomock.Any()).Return(entities.Payment{}, usecase.ErrOrderNotPayable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/o-1", bytes.NewBufferString(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success with prepayment kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.POST("/v1/payments/:order_id", h.CreatePayment)

		now := time.Now().UTC()
		uc.EXPECT().CreateAndApprove(gomock.Any(), "o-1", entities.PaymentKindPrepayment, json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)).
			Return(entities.Payment{ID: "pay-1", OrderID: "o-1", Kind: entities.PaymentKindPrepayment, Amount: decimal.RequireFromString("40"), Date: now, Status: entities.PaymentStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/o-1?kind=Prepayment", bytes.NewBufferString(`{"provider_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["amount"] != float64(40) || body["kind"] != "prepayment" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("order of another location", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewPaymentHandler(uc, orders, false)

		r := gin.New()
		r.POST("/v1/payments/:order_id", withPrincipal(middleware.Principal{UserID: "u-1", Role: middleware.RoleManager, LocationID: "loc-1"}), h.CreatePayment)

		orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", LocationID: "loc-2"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/o-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetPaymentByOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.GetPaymentByOrderID)

		uc.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return(nil, usecase.ErrInvalidPaymentOrderID)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/o-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.GetPaymentByOrderID)

		uc.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return([]entities.Payment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/o-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, nil, false)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.GetPaymentByOrderID)

		old := entities.Payment{ID: "old", OrderID: "o-1", Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusApproved}
		latest := entities.Payment{ID: "latest", OrderID: "o-1", Date: time.Now(), Status: entities.PaymentStatusPending}
		uc.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return([]entities.Payment{old, latest}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/o-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "latest" {
			t.Fatalf("expected latest payment, got body: %s", w.Body.String())
		}
	})
}

func TestReadProviderPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeCtx := func(raw string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		return c
	}

	ctxReadErr := makeCtx("{}")
	ctxReadErr.Request.Body = failingReadCloser{}
	if _, err := readProviderPayload(ctxReadErr); err == nil {
		t.Fatalf("expected read body error")
	}

	if _, err := readProviderPayload(makeCtx("{invalid")); err == nil {
		t.Fatalf("expected invalid json error")
	}

	payload, err := readProviderPayload(makeCtx("   "))
	if err != nil || string(payload) != "{}" {
		t.Fatalf("expected {}, got payload=%s err=%v", string(payload), err)
	}

	if _, err := readProviderPayload(makeCtx(`{"provider_payload":null}`)); err == nil {
		t.Fatalf("expected provider_payload empty error")
	}

	payload, err = readProviderPayload(makeCtx(`{"provider_payload":{"a":1}}`))
	if err != nil || string(payload) != `{"a":1}` {
		t.Fatalf("expected wrapped payload, got %s err=%v", payload, err)
	}

	payload, err = readProviderPayload(makeCtx(`{"payment_method_id":"pix"}`))
	if err != nil || string(payload) != `{"payment_method_id":"pix"}` {
		t.Fatalf("expected raw body payload, got %s err=%v", payload, err)
	}
}

func TestMapPaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidPaymentOrderID, http.StatusBadRequest},
		{usecase.ErrInvalidPaymentKind, http.StatusBadRequest},
		{usecase.ErrInvalidProviderPayload, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayUnauthorized, http.StatusUnauthorized},
		{usecase.ErrOrderNotFound, http.StatusNotFound},
		{usecase.ErrOrderNotPayable, http.StatusConflict},
		{usecase.ErrNothingToCharge, http.StatusConflict},
		{usecase.ErrPaymentNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapPaymentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
