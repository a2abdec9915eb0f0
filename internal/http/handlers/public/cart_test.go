package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v (%s)", err, w.Body.String())
	}
	return body
}

func createCartToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := postJSON(t, r, "/api/v1/cart/get-or-create", `{"businessId":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("get-or-create status want 200 got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	cart, ok := body["cart"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing cart object: %s", w.Body.String())
	}
	token, _ := cart["session_token"].(string)
	if token == "" {
		t.Fatalf("empty session token: %s", w.Body.String())
	}
	return token
}

func TestGetOrCreateCartRequiresBusinessID(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)
	w := postJSON(t, r, "/api/v1/cart/get-or-create", `{"sessionToken":"tok-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "invalid request body" {
		t.Fatalf("unexpected error message: %v", msg)
	}
}

func TestClearCartWithTokenOnlyBody(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)

	// 未知令牌也幂等成功
	w := postJSON(t, r, "/api/v1/cart/clear", `{"sessionToken":"tok-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", w.Code, w.Body.String())
	}
	if success, _ := decodeBody(t, w)["success"].(bool); !success {
		t.Fatalf("expected success=true: %s", w.Body.String())
	}

	token := createCartToken(t, r)
	w = postJSON(t, r, "/api/v1/cart/clear", fmt.Sprintf(`{"sessionToken":%q}`, token))
	if w.Code != http.StatusOK {
		t.Fatalf("clear existing cart status want 200 got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartItemFlowOverHTTP(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)
	token := createCartToken(t, r)

	w := postJSON(t, r, "/api/v1/cart/add-item", fmt.Sprintf(
		`{"sessionToken":%q,"productId":"prod-1","productName":"Candle","unitPriceCents":1500,"quantity":2}`, token))
	if w.Code != http.StatusOK {
		t.Fatalf("add-item status want 200 got %d: %s", w.Code, w.Body.String())
	}
	itemID, ok := decodeBody(t, w)["itemId"].(float64)
	if !ok || itemID == 0 {
		t.Fatalf("missing itemId: %s", w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/cart/update-item", fmt.Sprintf(
		`{"sessionToken":%q,"itemId":%d,"quantity":5}`, token, int(itemID)))
	if w.Code != http.StatusOK {
		t.Fatalf("update-item status want 200 got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/cart/update-item", fmt.Sprintf(
		`{"sessionToken":%q,"itemId":%d,"quantity":0}`, token, int(itemID)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero quantity status want 400 got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/cart/update-item", fmt.Sprintf(
		`{"sessionToken":%q,"itemId":9999,"quantity":1}`, token))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown item status want 404 got %d: %s", w.Code, w.Body.String())
	}
}

func TestRemoveCartItemOverHTTP(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)
	token := createCartToken(t, r)

	w := postJSON(t, r, "/api/v1/cart/add-item", fmt.Sprintf(
		`{"sessionToken":%q,"productId":"prod-1","productName":"Candle","unitPriceCents":1500,"quantity":1}`, token))
	itemID := int(decodeBody(t, w)["itemId"].(float64))

	w = postJSON(t, r, "/api/v1/cart/remove-item", fmt.Sprintf(
		`{"sessionToken":%q,"itemId":%d}`, token, itemID))
	if w.Code != http.StatusOK {
		t.Fatalf("remove-item status want 200 got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/cart/remove-item", fmt.Sprintf(
		`{"sessionToken":%q,"itemId":%d}`, token, itemID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("remove twice status want 404 got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetBookingDetailsOverHTTP(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)
	token := createCartToken(t, r)

	w := postJSON(t, r, "/api/v1/cart/booking", fmt.Sprintf(
		`{"sessionToken":%q,"serviceName":"Haircut","customerName":"Alice","customerEmail":""}`, token))
	if w.Code != http.StatusOK {
		t.Fatalf("booking status want 200 got %d: %s", w.Code, w.Body.String())
	}
	if success, _ := decodeBody(t, w)["success"].(bool); !success {
		t.Fatalf("expected success=true: %s", w.Body.String())
	}
}

func TestCreateOrderOverHTTP(t *testing.T) {
	r, _ := setupHandlerTest(t, nil)

	w := postJSON(t, r, "/api/v1/orders/create", `{
		"businessId": 1,
		"customerEmail": "buyer@example.com",
		"items": [{"productId":"prod-1","productName":"Candle","unitPriceCents":1500,"quantity":2}],
		"subtotalCents": 3000,
		"totalCents": 3000
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order status want 201 got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != "draft" {
		t.Fatalf("status field want draft got %v", body["status"])
	}
	if orderNo, _ := body["orderNo"].(string); orderNo == "" {
		t.Fatalf("missing orderNo: %s", w.Body.String())
	}
	if orderID, _ := body["orderId"].(float64); orderID == 0 {
		t.Fatalf("missing orderId: %s", w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/orders/create", `{"businessId":1,"customerEmail":"buyer@example.com","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty items status want 400 got %d: %s", w.Code, w.Body.String())
	}
}
