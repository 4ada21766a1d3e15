package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/nikka005/nirbani-sub001/internal/config"
)

// Client sends transactional SMS through the MSG91 HTTP API. When no auth
// key is configured the client runs in simulation mode: messages are logged
// but never sent, so development setups work without a gateway account.
type Client struct {
	cfg  config.SMSConfig
	http *resty.Client
	log  *zap.Logger
}

func NewClient(cfg config.SMSConfig, log *zap.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.msg91.com/api/v5"
	}

	httpClient := resty.New().
		SetBaseURL(base).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &Client{cfg: cfg, http: httpClient, log: log.Named("sms")}
}

// Simulated reports whether the client logs messages instead of sending them.
func (c *Client) Simulated() bool {
	return c.cfg.AuthKey == ""
}

type flowRequest struct {
	TemplateID string            `json:"template_id"`
	Sender     string            `json:"sender"`
	Mobiles    string            `json:"mobiles"`
	Vars       map[string]string `json:"variables,omitempty"`
}

func (c *Client) send(ctx context.Context, phone, templateID string, vars map[string]string, fallbackText string) error {
	if c.Simulated() {
		c.log.Info("sms simulated",
			zap.String("phone", phone),
			zap.String("message", fallbackText))
		return nil
	}

	req := flowRequest{
		TemplateID: templateID,
		Sender:     c.cfg.SenderID,
		Mobiles:    "91" + phone,
		Vars:       vars,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("authkey", c.cfg.AuthKey).
		SetBody(req).
		Post("/flow/")
	if err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms send: gateway status %d: %s", resp.StatusCode(), resp.String())
	}

	c.log.Info("sms sent", zap.String("phone", phone), zap.String("template", templateID))
	return nil
}

// SendCollectionReceipt notifies a farmer of a recorded delivery.
// The message is bilingual so farmers comfortable in either language can read it.
func (c *Client) SendCollectionReceipt(ctx context.Context, phone, farmerName, date, shift string, quantity, fat, rate, amount, balance float64) error {
	shiftHi := "सुबह"
	if shift == "evening" {
		shiftHi = "शाम"
	}
	text := fmt.Sprintf(
		"%s जी, आपका दूध जमा हुआ: %s (%s) %.1f ली, फैट %.1f, दर ₹%.2f, राशि ₹%.2f. कुल बकाया ₹%.2f.\n"+
			"%s, milk received: %s (%s) %.1f L, fat %.1f, rate Rs %.2f, amount Rs %.2f. Balance due Rs %.2f.",
		farmerName, date, shiftHi, quantity, fat, rate, amount, balance,
		farmerName, date, shift, quantity, fat, rate, amount, balance)

	vars := map[string]string{
		"name":    farmerName,
		"date":    date,
		"shift":   shift,
		"qty":     fmt.Sprintf("%.1f", quantity),
		"fat":     fmt.Sprintf("%.1f", fat),
		"rate":    fmt.Sprintf("%.2f", rate),
		"amount":  fmt.Sprintf("%.2f", amount),
		"balance": fmt.Sprintf("%.2f", balance),
	}
	return c.send(ctx, phone, c.cfg.CollectionTemplate, vars, text)
}

// SendPaymentReceipt notifies a farmer of a payout.
func (c *Client) SendPaymentReceipt(ctx context.Context, phone, farmerName, date string, amount, balance float64, mode string) error {
	text := fmt.Sprintf(
		"%s जी, भुगतान ₹%.2f (%s) %s को किया गया. शेष बकाया ₹%.2f.\n"+
			"%s, payment of Rs %.2f (%s) made on %s. Remaining balance Rs %.2f.",
		farmerName, amount, mode, date, balance,
		farmerName, amount, mode, date, balance)

	vars := map[string]string{
		"name":    farmerName,
		"date":    date,
		"amount":  fmt.Sprintf("%.2f", amount),
		"mode":    mode,
		"balance": fmt.Sprintf("%.2f", balance),
	}
	return c.send(ctx, phone, c.cfg.PaymentTemplate, vars, text)
}

// SendDailySummary sends the end-of-day totals to the owner.
func (c *Client) SendDailySummary(ctx context.Context, phone, date string, totalLiters, totalAmount float64, farmerCount int) error {
	text := fmt.Sprintf(
		"दैनिक सारांश %s: %.1f ली दूध, %d किसान, राशि ₹%.2f.\n"+
			"Daily summary %s: %.1f L milk, %d farmers, amount Rs %.2f.",
		date, totalLiters, farmerCount, totalAmount,
		date, totalLiters, farmerCount, totalAmount)

	vars := map[string]string{
		"date":    date,
		"liters":  fmt.Sprintf("%.1f", totalLiters),
		"farmers": fmt.Sprintf("%d", farmerCount),
		"amount":  fmt.Sprintf("%.2f", totalAmount),
	}
	return c.send(ctx, phone, c.cfg.CollectionTemplate, vars, text)
}
