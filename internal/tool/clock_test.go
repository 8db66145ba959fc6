package tool

import (
	"context"
	"strings"
	"testing"
	"time"
)

var clockFixed = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() *Clock {
	return &Clock{now: func() time.Time { return clockFixed }}
}

func clockRun(t *testing.T, args map[string]any) Result {
	t.Helper()
	res, err := fixedClock().Execute(context.Background(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func TestClock_ISO(t *testing.T) {
	res := clockRun(t, map[string]any{"format": "iso"})
	if !res.Success || res.Output != "2026-03-14T15:09:26Z" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClock_Timestamp(t *testing.T) {
	res := clockRun(t, map[string]any{"format": "timestamp"})
	if !res.Success || res.Output != "1773500966" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClock_Human(t *testing.T) {
	res := clockRun(t, map[string]any{"format": "human"})
	if !res.Success || res.Output != "Saturday, March 14, 2026 at 3:09 PM UTC" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClock_DefaultIsHuman(t *testing.T) {
	res := clockRun(t, map[string]any{})
	if !res.Success || !strings.Contains(res.Output, "March 14, 2026") {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClock_Full(t *testing.T) {
	res := clockRun(t, map[string]any{"format": "full"})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	for _, want := range []string{"Date: 2026-03-14", "Time: 15:09:26 UTC", "Weekday: Saturday", "Timestamp: 1773500966"} {
		if !strings.Contains(res.Output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, res.Output)
		}
	}
}

func TestClock_UnknownFormat(t *testing.T) {
	res := clockRun(t, map[string]any{"format": "stardate"})
	if res.Success {
		t.Error("expected failure for unknown format")
	}
}

func TestClock_SchemaEnum(t *testing.T) {
	schema := Schema(NewClock())
	props := schema.Parameters["properties"].(map[string]any)
	format := props["format"].(map[string]any)
	enum, ok := format["enum"].([]string)
	if !ok || len(enum) != 4 {
		t.Errorf("expected 4 enum values, got %v", format["enum"])
	}
}
