package push

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"patient-visit-history/internal/platform/httpclient"
	"patient-visit-history/internal/ports/notify"
)

// roundTripFunc deja inyectar el upstream sin levantar un server.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()

	c := NewClient(Config{
		BaseURL: "https://push.example.com",
		APIKey:  "secret",
	})
	hc := httpclient.NewWithTransport(5*time.Second, rt)
	hc.BaseURL = "https://push.example.com"
	c.http = hc
	return c
}

func TestClient_IsConfigured(t *testing.T) {
	if NewClient(Config{}).IsConfigured() {
		t.Fatalf("empty config should not be configured")
	}
	if NewClient(Config{BaseURL: "https://push.example.com"}).IsConfigured() {
		t.Fatalf("missing api key should not be configured")
	}
	if !NewClient(Config{BaseURL: "https://push.example.com", APIKey: "k"}).IsConfigured() {
		t.Fatalf("base url + api key should be configured")
	}
}

func TestScheduler_Schedule_SendsPayload(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte

	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		capturedBody, _ = io.ReadAll(r.Body)
		return &http.Response{
			StatusCode: http.StatusAccepted,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}, nil
	})

	sched := NewScheduler(client)
	err := sched.Schedule(context.Background(), notify.Notification{
		Title: "How was your visit?",
		Body:  "We'd love to hear your feedback!",
		Data:  notify.Data{Type: notify.TypeFeedbackRequest, VisitID: "v-1"},
		Delay: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}

	if captured.Method != http.MethodPost || captured.URL.Path != "/v1/notifications" {
		t.Fatalf("unexpected request: %s %s", captured.Method, captured.URL.Path)
	}
	if got := captured.Header.Get("X-Api-Key"); got != "secret" {
		t.Fatalf("api key header missing, got %q", got)
	}

	var p struct {
		Title        string `json:"title"`
		DelaySeconds int    `json:"delay_seconds"`
		Data         struct {
			Type    string `json:"type"`
			VisitID string `json:"visitId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(capturedBody, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.Title != "How was your visit?" || p.DelaySeconds != 5 {
		t.Fatalf("unexpected payload: %s", string(capturedBody))
	}
	if p.Data.Type != "feedback_request" || p.Data.VisitID != "v-1" {
		t.Fatalf("unexpected data: %s", string(capturedBody))
	}
}

func TestClient_Send_MapsUnauthorized(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader("bad key")),
			Header:     http.Header{},
		}, nil
	})

	sched := NewScheduler(client)
	err := sched.Schedule(context.Background(), notify.Notification{
		Title: "Welcome to the Clinic!",
		Data:  notify.Data{Type: notify.TypeClinicEntry},
	})
	if !errors.Is(err, ErrPushUnauthorized) {
		t.Fatalf("expected ErrPushUnauthorized, got %v", err)
	}
}

func TestClient_Send_MapsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     http.Header{},
		}, nil
	})

	err := client.Send(context.Background(), notificationPayload{Title: "x"})
	if !errors.Is(err, ErrPushUpstream) {
		t.Fatalf("expected ErrPushUpstream, got %v", err)
	}
}

func TestScheduler_Schedule_NotConfigured(t *testing.T) {
	sched := NewScheduler(NewClient(Config{}))

	err := sched.Schedule(context.Background(), notify.Notification{
		Title: "Welcome to the Clinic!",
		Data:  notify.Data{Type: notify.TypeClinicEntry},
	})
	if !errors.Is(err, ErrPushNotConfigured) {
		t.Fatalf("expected ErrPushNotConfigured, got %v", err)
	}
}
