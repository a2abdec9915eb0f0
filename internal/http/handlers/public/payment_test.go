package public

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/storefront-next/internal/payment/square"

	"github.com/gin-gonic/gin"
)

type recordingGateway struct {
	status string
	calls  int
	last   square.CreatePaymentInput
}

func (g *recordingGateway) CreatePayment(_ context.Context, input square.CreatePaymentInput) (*square.PaymentResult, error) {
	g.calls++
	g.last = input
	return &square.PaymentResult{
		PaymentID:   "pay-123",
		Status:      g.status,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
	}, nil
}

func createDraftOrder(t *testing.T, r *gin.Engine) int {
	t.Helper()
	w := postJSON(t, r, "/api/v1/orders/create", `{
		"businessId": 1,
		"customerEmail": "buyer@example.com",
		"items": [{"productId":"prod-1","productName":"Candle","unitPriceCents":1500,"quantity":2}],
		"totalCents": 3000
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order status want 201 got %d: %s", w.Code, w.Body.String())
	}
	orderID, _ := decodeBody(t, w)["orderId"].(float64)
	if orderID == 0 {
		t.Fatalf("missing orderId: %s", w.Body.String())
	}
	return int(orderID)
}

func TestProcessPaymentOverHTTP(t *testing.T) {
	gateway := &recordingGateway{status: "COMPLETED"}
	r, _ := setupHandlerTest(t, gateway)
	orderID := createDraftOrder(t, r)

	w := postJSON(t, r, "/api/v1/payments/process", fmt.Sprintf(
		`{"businessId":1,"orderId":%d,"sourceId":"cnon:card-nonce","idempotencyKey":"idem-1"}`, orderID))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success=true: %s", w.Body.String())
	}
	if body["paymentId"] != "pay-123" {
		t.Fatalf("unexpected paymentId: %v", body["paymentId"])
	}
	if gateway.calls != 1 {
		t.Fatalf("gateway calls want 1 got %d", gateway.calls)
	}
	if gateway.last.AmountCents != 3000 || gateway.last.LocationID != "loc-1" {
		t.Fatalf("unexpected gateway input: %+v", gateway.last)
	}

	// 已支付订单重复提交不再触发网关
	w = postJSON(t, r, "/api/v1/payments/process", fmt.Sprintf(
		`{"businessId":1,"orderId":%d,"sourceId":"cnon:card-nonce","idempotencyKey":"idem-2"}`, orderID))
	if w.Code != http.StatusOK {
		t.Fatalf("repeat status want 200 got %d: %s", w.Code, w.Body.String())
	}
	if gateway.calls != 1 {
		t.Fatalf("gateway calls after repeat want 1 got %d", gateway.calls)
	}
}

func TestProcessPaymentValidationOverHTTP(t *testing.T) {
	gateway := &recordingGateway{status: "COMPLETED"}
	r, _ := setupHandlerTest(t, gateway)
	orderID := createDraftOrder(t, r)

	// 缺 sourceId 触发绑定校验
	w := postJSON(t, r, "/api/v1/payments/process", fmt.Sprintf(
		`{"businessId":1,"orderId":%d,"idempotencyKey":"idem-1"}`, orderID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing sourceId status want 400 got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/payments/process",
		`{"businessId":1,"orderId":9999,"sourceId":"cnon:card-nonce","idempotencyKey":"idem-1"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown order status want 404 got %d: %s", w.Code, w.Body.String())
	}
	if gateway.calls != 0 {
		t.Fatalf("gateway calls want 0 got %d", gateway.calls)
	}
}
