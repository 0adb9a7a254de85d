package webhook

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDeadLetterStore_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletters.jsonl")
	store := NewDeadLetterStore(path)

	dl := DeadLetter{
		Timestamp:    time.Now().UTC(),
		EndpointName: "test",
		URL:          "https://example.com/hook",
		Payload:      `{"event_type":"analysis.completed"}`,
		Error:        "connection refused",
	}

	if err := store.Append(dl); err != nil {
		t.Fatal(err)
	}

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if entries[0].EndpointName != "test" {
		t.Errorf("expected endpoint name test, got %s", entries[0].EndpointName)
	}
}

func TestDeadLetterStore_ReadAll_MissingFile(t *testing.T) {
	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "nonexistent.jsonl"))

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if entries != nil {
		t.Errorf("expected nil entries for missing file, got %v", entries)
	}
}
