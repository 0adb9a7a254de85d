// Package webhook delivers completed analysis results to configured HTTP
// endpoints, with retry and timeout handling plus a dead-letter file for
// undeliverable payloads.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/config"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

// Notifier sends analysis results to all matching webhook endpoints.
type Notifier struct {
	endpoints  []config.WebhookEndpoint
	client     *http.Client
	deadLetter *DeadLetterStore
	retryCfg   retry.Config
	timeoutCfg timeout.Config
}

// NewNotifier creates a notifier with the given endpoints and dead letter
// store. A nil store disables dead-lettering.
func NewNotifier(endpoints []config.WebhookEndpoint, deadLetter *DeadLetterStore) *Notifier {
	return &Notifier{
		endpoints: endpoints,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		deadLetter: deadLetter,
		retryCfg: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  time.Second,
			BackoffPolicy: retry.BackoffExponential,
		},
		timeoutCfg: timeout.Config{
			DefaultTimeout: 10 * time.Second,
		},
	}
}

// Payload is the JSON body sent to webhook endpoints.
type Payload struct {
	EventType string                      `json:"event_type"`
	Timestamp time.Time                   `json:"timestamp"`
	Data      *application.AnalysisResult `json:"data"`
}

// Notify sends a result to all enabled endpoints whose rating filter matches.
// Delivery happens in the background; Notify never blocks on the network.
func (n *Notifier) Notify(ctx context.Context, result *application.AnalysisResult) {
	payload := Payload{
		EventType: "analysis.completed",
		Timestamp: result.AnalyzedAt,
		Data:      result,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	rating := result.Report.OverallReadinessScore.ReadinessRating
	for _, ep := range n.endpoints {
		if !ep.Enabled {
			continue
		}
		if ep.OnlyBelow > 0 && rating >= ep.OnlyBelow {
			continue
		}
		go n.deliver(ctx, ep, body)
	}
}

func (n *Notifier) deliver(ctx context.Context, ep config.WebhookEndpoint, body []byte) {
	r := retry.New[struct{}](n.retryCfg)
	t := timeout.New[struct{}](n.timeoutCfg)

	_, err := r.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return t.Execute(ctx, n.timeoutCfg.DefaultTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, n.send(ctx, ep, body)
		})
	})
	if err == nil {
		return
	}

	if n.deadLetter != nil {
		dl := DeadLetter{
			Timestamp:    time.Now().UTC(),
			EndpointName: ep.Name,
			URL:          ep.URL,
			Payload:      string(body),
			Error:        err.Error(),
		}
		_ = n.deadLetter.Append(dl)
	}
}

func (n *Notifier) send(ctx context.Context, ep config.WebhookEndpoint, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Storylint-Webhook/1.0")

	if ep.Secret != "" {
		req.Header.Set("X-Storylint-Signature", sign(body, ep.Secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// sign computes HMAC-SHA256 of the payload using the secret.
func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
