package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// ReportSender delivers a finalized intelligence report to an external
// consumer
type ReportSender interface {
	Send(ctx context.Context, report *models.IntelligenceReport) error
}

// CallbackClient posts intelligence reports as JSON to a configured
// webhook URL
type CallbackClient struct {
	cfg    config.CallbackConfig
	client *http.Client
	log    *logger.Logger
}

// NewCallbackClient creates a callback client
func NewCallbackClient(cfg config.CallbackConfig, log *logger.Logger) *CallbackClient {
	return &CallbackClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.WithComponent("callback"),
	}
}

// Send delivers the report. Any non-2xx response is an error so the
// caller can retry on the next message.
func (c *CallbackClient) Send(ctx context.Context, report *models.IntelligenceReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("callback delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback rejected with status %d", resp.StatusCode)
	}

	c.log.Info().
		Str("session_id", report.SessionID).
		Int("risk_score", report.RiskScore).
		Msg("intelligence report delivered")
	return nil
}
