package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/config"
	"github.com/felixgeelhaar/storylint/pkg/application"
	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

func testResult(t *testing.T, story string) *application.AnalysisResult {
	t.Helper()
	cfg := scoring.DefaultConfig()
	return &application.AnalysisResult{
		ID:         "test-result",
		Source:     "test",
		Story:      story,
		AnalyzedAt: time.Now().UTC(),
		Report:     scoring.Analyze(cfg, story, ""),
	}
}

func TestNotifier_DeliverySuccess(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ep := config.WebhookEndpoint{
		Name:    "test",
		URL:     server.URL,
		Enabled: true,
	}

	n := NewNotifier([]config.WebhookEndpoint{ep}, nil)
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	time.Sleep(200 * time.Millisecond)

	if received.Load() != 1 {
		t.Errorf("expected 1 delivery, got %d", received.Load())
	}
}

func TestNotifier_HMACSignature(t *testing.T) {
	secret := "test-secret"
	var receivedSig string
	var receivedBody []byte
	done := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedSig = r.Header.Get("X-Storylint-Signature")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		close(done)
	}))
	defer server.Close()

	ep := config.WebhookEndpoint{
		Name:    "test",
		URL:     server.URL,
		Secret:  secret,
		Enabled: true,
	}

	n := NewNotifier([]config.WebhookEndpoint{ep}, nil)
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery did not arrive")
	}

	if receivedSig == "" {
		t.Fatal("expected X-Storylint-Signature header")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(receivedBody)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	if receivedSig != expected {
		t.Errorf("signature mismatch: got %s, want %s", receivedSig, expected)
	}
}

func TestNotifier_RetryAndDeadLetter(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dlPath := filepath.Join(t.TempDir(), "deadletters.jsonl")
	dlStore := NewDeadLetterStore(dlPath)

	ep := config.WebhookEndpoint{
		Name:    "test",
		URL:     server.URL,
		Enabled: true,
	}

	n := NewNotifier([]config.WebhookEndpoint{ep}, dlStore)
	// Speed the test up with short retry delays.
	n.retryCfg = retry.Config{
		MaxAttempts:   2,
		InitialDelay:  10 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
	}
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entries, err := dlStore.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) == 1 {
			if attempts.Load() != 2 {
				t.Errorf("expected 2 attempts, got %d", attempts.Load())
			}
			if entries[0].EndpointName != "test" {
				t.Errorf("endpoint name: got %q", entries[0].EndpointName)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("dead letter never recorded")
}

func TestNotifier_RatingFilter(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ep := config.WebhookEndpoint{
		Name:      "low-score-alerts",
		URL:       server.URL,
		Enabled:   true,
		OnlyBelow: 10,
	}

	n := NewNotifier([]config.WebhookEndpoint{ep}, nil)

	// A well-formed story scores above the filter, so no delivery.
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	time.Sleep(200 * time.Millisecond)

	if received.Load() != 0 {
		t.Errorf("expected 0 deliveries above the rating filter, got %d", received.Load())
	}

	// An empty story scores 0, below the filter.
	n.Notify(context.Background(), testResult(t, ""))

	time.Sleep(200 * time.Millisecond)

	if received.Load() != 1 {
		t.Errorf("expected 1 delivery below the rating filter, got %d", received.Load())
	}
}

func TestNotifier_DisabledEndpoint(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ep := config.WebhookEndpoint{Name: "off", URL: server.URL, Enabled: false}
	n := NewNotifier([]config.WebhookEndpoint{ep}, nil)
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	time.Sleep(200 * time.Millisecond)

	if received.Load() != 0 {
		t.Errorf("expected 0 deliveries to a disabled endpoint, got %d", received.Load())
	}
}

func TestPayloadFormat(t *testing.T) {
	var receivedPayload Payload
	done := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &receivedPayload)
		w.WriteHeader(http.StatusOK)
		close(done)
	}))
	defer server.Close()

	ep := config.WebhookEndpoint{Name: "test", URL: server.URL, Enabled: true}
	n := NewNotifier([]config.WebhookEndpoint{ep}, nil)
	n.Notify(context.Background(), testResult(t, "As a user, I want alerts, so that I stay informed"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery did not arrive")
	}

	if receivedPayload.EventType != "analysis.completed" {
		t.Errorf("expected event_type analysis.completed, got %s", receivedPayload.EventType)
	}
	if receivedPayload.Data == nil || receivedPayload.Data.Report == nil {
		t.Fatal("expected payload to carry the full report")
	}
}
