package storage

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"title":        "React Fundamentals",
		"total_days":   int64(5),
		"daily_hours":  1.5,
		"is_completed": int64(1),
		"deleted_at":   nil,
		"concepts":     json.RawMessage(`["JSX","State"]`),
	}

	if got := rec.String("title"); got != "React Fundamentals" {
		t.Errorf("String(title) = %q", got)
	}
	if got := rec.Int("total_days"); got != 5 {
		t.Errorf("Int(total_days) = %d", got)
	}
	if got := rec.Float("daily_hours"); got != 1.5 {
		t.Errorf("Float(daily_hours) = %v", got)
	}
	if !rec.Bool("is_completed") {
		t.Error("Bool(is_completed) = false, want true")
	}
	if rec.StringPtr("deleted_at") != nil {
		t.Error("StringPtr(deleted_at) should be nil for NULL")
	}
	if rec.String("missing") != "" || rec.Int("missing") != 0 || rec.Bool("missing") {
		t.Error("missing keys should return zero values")
	}

	var concepts []string
	if err := rec.Decode("concepts", &concepts); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]string{"JSX", "State"}, concepts); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordDecodeUnencodedValue(t *testing.T) {
	rec := Record{"tags": []string{"go", "remote"}}

	var tags []string
	if err := rec.Decode("tags", &tags); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]string{"go", "remote"}, tags); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	untouched := []string{"keep"}
	if err := rec.Decode("absent", &untouched); err != nil || len(untouched) != 1 {
		t.Errorf("Decode of absent key = %v, %v; want untouched", untouched, err)
	}
}
