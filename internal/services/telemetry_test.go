package services

import (
	"net/http"
	"testing"

	"github.com/astra-capstone/astra-backend/internal/platform/apierr"
)

func TestTelemetryListNewestFirstWithLimit(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	for _, stamp := range []string{
		"2026-02-11T10:00:00Z",
		"2026-02-11T10:00:02Z",
		"2026-02-11T10:00:01Z",
	} {
		if _, err := telemetry.Create(sess.ID, TelemetryCreateInput{
			Timestamp: ts(t, stamp),
			Channel:   "voltage",
			Value:     floatptr(28.1),
		}); err != nil {
			t.Fatalf("ingest: %v", err)
		}
	}

	listed, err := telemetry.List(sess.ID, TelemetryListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("list: want=3 got=%d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].Timestamp.After(listed[i-1].Timestamp) {
			t.Fatalf("list must be newest first, broken at %d", i)
		}
	}

	capped, err := telemetry.List(sess.ID, TelemetryListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("limit: want=2 got=%d", len(capped))
	}
	if !capped[0].Timestamp.Equal(ts(t, "2026-02-11T10:00:02Z")) {
		t.Fatalf("limit must keep the newest samples, got %v", capped[0].Timestamp)
	}
}

func TestTelemetryListFilters(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	ingest := func(stamp, channel string, value float64) {
		t.Helper()
		if _, err := telemetry.Create(sess.ID, TelemetryCreateInput{
			Timestamp: ts(t, stamp),
			Channel:   channel,
			Value:     floatptr(value),
		}); err != nil {
			t.Fatalf("ingest: %v", err)
		}
	}
	ingest("2026-02-11T10:00:00Z", "voltage", 28.0)
	ingest("2026-02-11T10:00:10Z", "voltage", 28.2)
	ingest("2026-02-11T10:00:20Z", "current", 1.4)

	byChannel, err := telemetry.List(sess.ID, TelemetryListFilter{Channel: "voltage"})
	if err != nil {
		t.Fatalf("list by channel: %v", err)
	}
	if len(byChannel) != 2 {
		t.Fatalf("channel filter: want=2 got=%d", len(byChannel))
	}

	from := ts(t, "2026-02-11T10:00:10Z")
	to := ts(t, "2026-02-11T10:00:20Z")
	ranged, err := telemetry.List(sess.ID, TelemetryListFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	// Bounds are inclusive on both ends.
	if len(ranged) != 2 {
		t.Fatalf("range filter: want=2 got=%d", len(ranged))
	}
}

func TestTelemetryBatchIngestsAll(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	count, err := telemetry.CreateBatch(sess.ID, TelemetryBatchInput{
		Data: []TelemetryCreateInput{
			{Timestamp: ts(t, "2026-02-11T10:00:00Z"), Channel: "voltage", Value: floatptr(28.0)},
			{Timestamp: ts(t, "2026-02-11T10:00:01Z"), Channel: "current", Value: floatptr(1.5)},
		},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if count != 2 {
		t.Fatalf("batch count: want=2 got=%d", count)
	}

	listed, err := telemetry.List(sess.ID, TelemetryListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("list after batch: want=2 got=%d", len(listed))
	}
}

func TestTelemetryLatestTieBreaksOnInsertionOrder(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	stamp := ts(t, "2026-02-11T10:00:00Z")
	for _, v := range []float64{1.0, 2.0, 3.0} {
		if _, err := telemetry.Create(sess.ID, TelemetryCreateInput{
			Timestamp: stamp,
			Channel:   "voltage",
			Value:     floatptr(v),
		}); err != nil {
			t.Fatalf("ingest: %v", err)
		}
	}

	latest, err := telemetry.Latest(sess.ID, "voltage")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Value != 3.0 {
		t.Fatalf("equal timestamps must resolve to the last ingested sample, got value=%v", latest.Value)
	}
}

func TestTelemetryLatestUnknownChannel(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	_, err := telemetry.Latest(sess.ID, "pressure")
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("status: want=404 got=%d", status)
	}
	if got := err.Error(); got != "No telemetry found for channel: pressure" {
		t.Fatalf("detail: got=%q", got)
	}
}

func TestTelemetryChannelsDistinctAndSorted(t *testing.T) {
	_, _, sessions, _, telemetry, _ := newFixture(t)
	sess := mustCreateSession(t, sessions, "run")

	for _, channel := range []string{"voltage", "current", "voltage", "temp"} {
		if _, err := telemetry.Create(sess.ID, TelemetryCreateInput{
			Timestamp: ts(t, "2026-02-11T10:00:00Z"),
			Channel:   channel,
			Value:     floatptr(0),
		}); err != nil {
			t.Fatalf("ingest: %v", err)
		}
	}

	channels, err := telemetry.Channels(sess.ID)
	if err != nil {
		t.Fatalf("channels: %v", err)
	}
	want := []string{"current", "temp", "voltage"}
	if len(channels) != len(want) {
		t.Fatalf("channels: want=%v got=%v", want, channels)
	}
	for i := range want {
		if channels[i] != want[i] {
			t.Fatalf("channels: want=%v got=%v", want, channels)
		}
	}
}

func TestTelemetryMissingSession(t *testing.T) {
	_, _, _, _, telemetry, _ := newFixture(t)

	if _, err := telemetry.Create("sess_missing", TelemetryCreateInput{
		Timestamp: ts(t, "2026-02-11T10:00:00Z"),
		Channel:   "voltage",
		Value:     floatptr(28.0),
	}); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("create against missing session must be 404, got %v", err)
	}
	if _, err := telemetry.List("sess_missing", TelemetryListFilter{}); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("list against missing session must be 404, got %v", err)
	}
	if _, err := telemetry.Channels("sess_missing"); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("channels against missing session must be 404, got %v", err)
	}
}
