package resend

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
	ErrConfigInvalid   = errors.New("resend config invalid")
	ErrRequestFailed   = errors.New("resend request failed")
	ErrResponseInvalid = errors.New("resend response invalid")
)

const (
	defaultAPIBaseURL = "https://api.resend.com"
	defaultTimeout    = 8 * time.Second
)

// Config Resend 邮件渠道配置。
type Config struct {
	APIKey     string `json:"api_key"`
	APIBaseURL string `json:"api_base_url"`
	From       string `json:"from"`
	FromName   string `json:"from_name"`
	TimeoutMS  int    `json:"timeout_ms"`
}

// SendInput 发送邮件输入。
type SendInput struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// SendResult 发送邮件返回。
type SendResult struct {
	MessageID string
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.From) == "" {
		return fmt.Errorf("%w: from is required", ErrConfigInvalid)
	}
	return nil
}

// Send 发送一封事务邮件。
func Send(ctx context.Context, cfg *Config, input SendInput) (*SendResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(input.To) == 0 {
		return nil, fmt.Errorf("%w: to is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrConfigInvalid)
	}

	from := strings.TrimSpace(cfg.From)
	if name := strings.TrimSpace(cfg.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", name, from)
	}
	payload := map[string]interface{}{
		"from":    from,
		"to":      input.To,
		"subject": strings.TrimSpace(input.Subject),
	}
	if text := strings.TrimSpace(input.Text); text != "" {
		payload["text"] = text
	}
	if html := strings.TrimSpace(input.HTML); html != "" {
		payload["html"] = html
	}
	if replyTo := strings.TrimSpace(input.ReplyTo); replyTo != "" {
		payload["reply_to"] = replyTo
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}
	endpoint := baseURL(cfg) + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(cfg.APIKey))
	req.Header.Set("Content-Type", "application/json")

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
		return nil, fmt.Errorf("%w: send email status %d", ErrResponseInvalid, resp.StatusCode)
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode body failed", ErrResponseInvalid)
	}
	return &SendResult{MessageID: strings.TrimSpace(decoded.ID)}, nil
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
