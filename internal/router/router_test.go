package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	memnotify "patient-visit-history/internal/adapters/notify/memory"
	"patient-visit-history/internal/config"
	"patient-visit-history/internal/ports/notify"
	"patient-visit-history/internal/router"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*httptest.Server, *memnotify.Scheduler) {
	t.Helper()

	cfg := &config.Config{
		StorageDriver:        "memory",
		FeedbackDelaySeconds: 0,
		ClinicID:             "clinic-nyc-001",
		ClinicName:           "Your Ophthalmology Clinic",
		ClinicLatitude:       40.7561,
		ClinicLongitude:      -73.9869,
		ClinicRadiusM:        150,
	}
	sched := memnotify.NewScheduler(zerolog.Nop())

	h, err := router.NewRouter(router.Options{
		Config:    cfg,
		Log:       zerolog.Nop(),
		Scheduler: sched,
	})
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, sched
}

func TestHTTP_EndToEnd_VisitLifecycle(t *testing.T) {
	ts, sched := newTestServer(t)

	// 1) Sin visita activa todavía
	{
		st, _ := doReq(t, ts.URL, "GET", "/visits/active", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 before arrival, got %d", st)
		}
	}

	// 2) El sensor reporta enter => se abre la visita
	{
		st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
			"event_type": 1,
			"region_id":  "clinic-nyc-001",
		})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 on enter event, got %d", st)
		}
	}

	var visitID string
	{
		st, body := doReq(t, ts.URL, "GET", "/visits/active", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active visit, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Source string `json:"source"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Status != "active" || resp.Source != "sensor" {
			t.Fatalf("unexpected active visit: %s", string(body))
		}
		visitID = resp.ID
	}

	// 3) La llegada programó la notificación de bienvenida
	{
		scheduled := sched.Scheduled()
		if len(scheduled) != 1 || scheduled[0].Data.Type != notify.TypeClinicEntry {
			t.Fatalf("expected clinic_entry notification, got %#v", scheduled)
		}
	}

	// 4) Notas pre-visita sobre la visita activa
	{
		st, body := doReq(t, ts.URL, "POST", "/visits/active/notes", map[string]any{
			"mood":    "nervous",
			"comment": "first visit",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 save note, got %d body=%s", st, string(body))
		}
	}

	// 5) Enter duplicado: misma visita, conserva las notas
	{
		st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
			"event_type": 1,
			"region_id":  "clinic-nyc-001",
		})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 on duplicate enter, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/visits/active", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active visit, got %d", st)
		}
		var resp struct {
			ID   string `json:"id"`
			Mood string `json:"mood"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != visitID || resp.Mood != "nervous" {
			t.Fatalf("duplicate enter replaced the visit: %s", string(body))
		}
	}

	// 6) El sensor reporta exit => la visita se cierra y pasa al histórico
	{
		st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
			"event_type": 2,
			"region_id":  "clinic-nyc-001",
		})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 on exit event, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/visits/active", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after departure, got %d", st)
		}
	}

	// 7) El cierre programó el pedido de feedback con el id de la visita
	{
		scheduled := sched.Scheduled()
		if len(scheduled) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(scheduled))
		}
		n := scheduled[1]
		if n.Data.Type != notify.TypeFeedbackRequest || n.Data.VisitID != visitID {
			t.Fatalf("unexpected feedback notification: %#v", n)
		}
	}

	// 8) Exit duplicado: no-op, no duplica el histórico
	{
		st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
			"event_type": 2,
			"region_id":  "clinic-nyc-001",
		})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 on duplicate exit, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/visits/history", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d", st)
		}
		var list []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].ID != visitID {
			t.Fatalf("expected single history entry for %s, got %s", visitID, string(body))
		}
	}

	// 9) El paciente responde la encuesta
	{
		st, body := doReq(t, ts.URL, "POST", "/visits/"+visitID+"/feedback", map[string]any{
			"answers": map[string]string{
				"staff":    "Excellent",
				"waitTime": "Slow",
				"care":     "Good",
			},
			"comment": "Thanks!",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 submit feedback, got %d body=%s", st, string(body))
		}
		var resp struct {
			VisitID string `json:"visit_id"`
			Rating  int    `json:"rating"`
			Status  string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.VisitID != visitID || resp.Rating != 3 || resp.Status != "completed" {
			t.Fatalf("unexpected feedback response: %s", string(body))
		}
	}

	// 10) El histórico refleja el feedback adjunto
	{
		st, body := doReq(t, ts.URL, "GET", "/visits/history", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d", st)
		}
		var list []struct {
			Status   string `json:"status"`
			Feedback *struct {
				Rating int `json:"rating"`
			} `json:"feedback"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].Feedback == nil || list[0].Feedback.Rating != 3 {
			t.Fatalf("feedback missing from history: %s", string(body))
		}
		if list[0].Status != "completed" {
			t.Fatalf("expected completed status in history, got %s", string(body))
		}
	}
}

func TestHTTP_GeofenceEvent_UnknownCodeIgnored(t *testing.T) {
	ts, sched := newTestServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
		"event_type": 9,
		"region_id":  "clinic-nyc-001",
	})
	if st != http.StatusAccepted {
		t.Fatalf("expected 202 for unknown event code, got %d", st)
	}

	// no abrió visita ni notificó nada
	if st, _ := doReq(t, ts.URL, "GET", "/visits/active", nil); st != http.StatusNotFound {
		t.Fatalf("unknown event code opened a visit")
	}
	if len(sched.Scheduled()) != 0 {
		t.Fatalf("unknown event code scheduled a notification")
	}
}

func TestHTTP_GeofenceEvent_UnknownRegionIgnored(t *testing.T) {
	ts, _ := newTestServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/geofence/events", map[string]any{
		"event_type": 1,
		"region_id":  "some-other-clinic",
	})
	if st != http.StatusAccepted {
		t.Fatalf("expected 202 for unknown region, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/visits/active", nil); st != http.StatusNotFound {
		t.Fatalf("unknown region opened a visit")
	}
}

func TestHTTP_ManualArrivalAndDeparture(t *testing.T) {
	ts, _ := newTestServer(t)

	// departure sin visita activa => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/visits/departure", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 departure without visit, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/visits/arrival", map[string]any{
		"mood": "fine",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 manual arrival, got %d body=%s", st, string(body))
	}
	var resp struct {
		Source string `json:"source"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Source != "manual" {
		t.Fatalf("expected manual source, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/visits/departure", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 manual departure, got %d", st)
	}
}

func TestHTTP_SaveNote_RequiresMood(t *testing.T) {
	ts, _ := newTestServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/visits/active/notes", map[string]any{
		"comment": "no mood",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing mood, got %d", st)
	}
}

func TestHTTP_FeedbackQuestions(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/feedback/questions", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 questions, got %d", st)
	}
	var qs []struct {
		ID      string `json:"id"`
		Text    string `json:"text"`
		Options []struct {
			Label string `json:"label"`
			Score int    `json:"score"`
		} `json:"options"`
	}
	_ = json.Unmarshal(body, &qs)
	if len(qs) != 3 || qs[0].ID != "staff" || len(qs[0].Options) != 4 {
		t.Fatalf("unexpected questions payload: %s", string(body))
	}
}

func TestHTTP_GeofenceRegion(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/geofence/region", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 region, got %d", st)
	}
	var resp struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		RadiusM int    `json:"radius_m"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID != "clinic-nyc-001" || resp.RadiusM != 150 {
		t.Fatalf("unexpected region payload: %s", string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}
