package mailerlite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("mailerlite config invalid")
	ErrRequestFailed   = errors.New("mailerlite request failed")
	ErrResponseInvalid = errors.New("mailerlite response invalid")
)

const (
	defaultAPIBaseURL = "https://connect.mailerlite.com"
	defaultTimeout    = 8 * time.Second
)

// Config MailerLite 营销名单渠道配置。
type Config struct {
	APIKey     string `json:"api_key"`
	APIBaseURL string `json:"api_base_url"`
	GroupID    string `json:"group_id"`
	TimeoutMS  int    `json:"timeout_ms"`
}

// UpsertSubscriberInput 订阅者写入输入。
type UpsertSubscriberInput struct {
	Email   string
	Name    string
	GroupID string
	Fields  map[string]interface{}
}

// UpsertSubscriberResult 订阅者写入返回。
type UpsertSubscriberResult struct {
	SubscriberID string
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	return nil
}

// UpsertSubscriber 写入或更新订阅者，并按需加入分组。
func UpsertSubscriber(ctx context.Context, cfg *Config, input UpsertSubscriberInput) (*UpsertSubscriberResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrConfigInvalid)
	}

	payload := map[string]interface{}{
		"email": email,
	}
	fields := map[string]interface{}{}
	for k, v := range input.Fields {
		fields[k] = v
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		fields["name"] = name
	}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	groupID := strings.TrimSpace(input.GroupID)
	if groupID == "" {
		groupID = strings.TrimSpace(cfg.GroupID)
	}
	if groupID != "" {
		payload["groups"] = []string{groupID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}
	endpoint := baseURL(cfg) + "/api/subscribers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(cfg.APIKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := (&http.Client{Timeout: timeout(cfg)}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upsert subscriber status %d", ErrResponseInvalid, resp.StatusCode)
	}

	var decoded struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode body failed", ErrResponseInvalid)
	}
	return &UpsertSubscriberResult{SubscriberID: strings.TrimSpace(decoded.Data.ID)}, nil
}

func baseURL(cfg *Config) string {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	return base
}

func timeout(cfg *Config) time.Duration {
	if cfg != nil && cfg.TimeoutMS > 0 {
		return time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return defaultTimeout
}
