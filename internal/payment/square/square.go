package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("square config invalid")
	ErrRequestFailed   = errors.New("square request failed")
	ErrResponseInvalid = errors.New("square response invalid")
	ErrPaymentDeclined = errors.New("square payment declined")
)

const (
	defaultAPIBaseURL = "https://connect.squareup.com"
	defaultTimeout    = 12 * time.Second
	apiVersion        = "2024-06-04"
)

// Config Square 渠道配置。
type Config struct {
	AccessToken string `json:"access_token"`
	APIBaseURL  string `json:"api_base_url"`
	TimeoutMS   int    `json:"timeout_ms"`
}

// CreatePaymentInput 创建 Square 支付输入。
type CreatePaymentInput struct {
	IdempotencyKey string
	SourceID       string
	LocationID     string
	AmountCents    int64
	Currency       string
	ReferenceID    string
	BuyerEmail     string
	Note           string
}

// PaymentResult 创建 Square 支付返回。
type PaymentResult struct {
	PaymentID   string
	Status      string
	ReceiptURL  string
	AmountCents int64
	Currency    string
	Raw         map[string]interface{}
}

// NewConfig 构造配置并补齐默认值。
func NewConfig(accessToken, apiBaseURL string, timeoutMS int) *Config {
	cfg := &Config{
		AccessToken: accessToken,
		APIBaseURL:  apiBaseURL,
		TimeoutMS:   timeoutMS,
	}
	cfg.normalize()
	return cfg
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return fmt.Errorf("%w: access_token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.APIBaseURL)); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreatePayment 创建 Square 支付。
func CreatePayment(ctx context.Context, cfg *Config, input CreatePaymentInput) (*PaymentResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		return nil, fmt.Errorf("%w: idempotency_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(input.SourceID) == "" {
		return nil, fmt.Errorf("%w: source_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(input.LocationID) == "" {
		return nil, fmt.Errorf("%w: location_id is required", ErrConfigInvalid)
	}
	if input.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	payload := map[string]interface{}{
		"idempotency_key": strings.TrimSpace(input.IdempotencyKey),
		"source_id":       strings.TrimSpace(input.SourceID),
		"location_id":     strings.TrimSpace(input.LocationID),
		"amount_money": map[string]interface{}{
			"amount":   input.AmountCents,
			"currency": currency,
		},
	}
	if ref := strings.TrimSpace(input.ReferenceID); ref != "" {
		payload["reference_id"] = ref
	}
	if email := strings.TrimSpace(input.BuyerEmail); email != "" {
		payload["buyer_email_address"] = email
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		payload["note"] = note
	}

	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodPost, "/v2/payments", payload)
	if err != nil {
		return nil, err
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		detail := readErrorDetail(raw)
		if detail != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, detail)
		}
		return nil, fmt.Errorf("%w: create payment status %d", ErrResponseInvalid, statusCode)
	}

	paymentRaw := readMap(raw, "payment")
	if paymentRaw == nil {
		return nil, fmt.Errorf("%w: missing payment object", ErrResponseInvalid)
	}
	result := &PaymentResult{
		Raw:         paymentRaw,
		PaymentID:   strings.TrimSpace(readString(paymentRaw, "id")),
		Status:      strings.ToUpper(strings.TrimSpace(readString(paymentRaw, "status"))),
		ReceiptURL:  strings.TrimSpace(readString(paymentRaw, "receipt_url")),
		AmountCents: input.AmountCents,
		Currency:    currency,
	}
	if amountRaw := readMap(paymentRaw, "amount_money"); amountRaw != nil {
		if amount := readInt64(amountRaw, "amount"); amount > 0 {
			result.AmountCents = amount
		}
		if c := strings.TrimSpace(readString(amountRaw, "currency")); c != "" {
			result.Currency = strings.ToUpper(c)
		}
	}
	if result.PaymentID == "" {
		return nil, fmt.Errorf("%w: missing payment id", ErrResponseInvalid)
	}
	return result, nil
}

// IsTerminalSuccess 判断网关状态是否为终态成功。
func IsTerminalSuccess(status string) bool {
	return strings.ToUpper(strings.TrimSpace(status)) == constants.GatewayStatusCompleted
}

// DisplayAmount 将分转为显示金额（如 "12.50"）。
func DisplayAmount(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

func (c *Config) normalize() {
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = int(defaultTimeout / time.Millisecond)
	}
}

func doJSONRequest(ctx context.Context, cfg *Config, method, path string, payload map[string]interface{}) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", apiVersion)

	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return respBody, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrResponseInvalid)
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode body failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readErrorDetail(raw map[string]interface{}) string {
	items, ok := raw["errors"].([]interface{})
	if !ok || len(items) == 0 {
		return ""
	}
	first, ok := items[0].(map[string]interface{})
	if !ok {
		return ""
	}
	detail := strings.TrimSpace(readString(first, "detail"))
	if detail != "" {
		return detail
	}
	return strings.TrimSpace(readString(first, "code"))
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil {
		return nil
	}
	if value, ok := raw[key].(map[string]interface{}); ok {
		return value
	}
	return nil
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil {
		return 0
	}
	switch value := raw[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case json.Number:
		if parsed, err := value.Int64(); err == nil {
			return parsed
		}
	}
	return 0
}
