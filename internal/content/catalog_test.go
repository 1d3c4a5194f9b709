package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestContent lays out a minimal valid data dir and returns its path.
func writeTestContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"manifest.json": `{"start_level": "park"}`,
		"events.json":   `{"events": ["met_actor", "met_actor_done", "door_open"]}`,
		"items.json": `{"items": [
			{"title": "key", "description": "A small brass key", "category": "things"}
		]}`,
		"sequences/meet_actor.json": `{
			"name": "meet_actor",
			"actions": [
				{"kind": "show_dialogue", "actor": "Clara", "line": "Hello again.", "position": "left", "wait_for_input": true},
				{"kind": "trigger_event", "event": "met_actor"},
				{"kind": "hide_dialogue"}
			]
		}`,
		"levels/park.yaml": `
name: park
scene: park_scene
initial_age_group: childhood
sequences:
  - completion_event: met_actor_done
    sequence: meet_actor
showables:
  - id: 1
    show_events: [met_actor]
    age_groups: [childhood]
`,
	}

	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad_ValidContent(t *testing.T) {
	c, err := Load(writeTestContent(t))
	if err != nil {
		t.Fatalf("Expected valid content to load, got %v", err)
	}

	if c.StartLevel != "park" {
		t.Errorf("Expected start level park, got %q", c.StartLevel)
	}
	if !c.HasEvent("met_actor") {
		t.Error("Expected met_actor event to be declared")
	}
	if len(c.Items) != 1 || c.Items[0].Title != "key" {
		t.Errorf("Unexpected items: %+v", c.Items)
	}

	lvl, ok := c.Level("park")
	if !ok {
		t.Fatal("Expected park level")
	}
	if lvl.Scene != "park_scene" {
		t.Errorf("Expected scene park_scene, got %q", lvl.Scene)
	}
	if len(lvl.Sequences) != 1 {
		t.Fatalf("Expected 1 triggered sequence, got %d", len(lvl.Sequences))
	}
	ts := lvl.Sequences[0]
	if ts.CompletionEvent != "met_actor_done" || ts.TriggerEvent != "" {
		t.Errorf("Unexpected sequence gates: %+v", ts)
	}
	if ts.Sequence == nil || len(ts.Sequence.Actions) != 3 {
		t.Fatalf("Expected resolved sequence with 3 actions, got %+v", ts.Sequence)
	}
	if !ts.Sequence.Actions[0].WaitForInput {
		t.Error("Expected first dialogue action to wait for input")
	}
	if len(lvl.Showables) != 1 || lvl.Showables[0].ID != 1 {
		t.Errorf("Unexpected showables: %+v", lvl.Showables)
	}
}

func TestLoad_ReportsDanglingReferences(t *testing.T) {
	dir := writeTestContent(t)

	// A level referencing an unknown sequence and unknown events
	bad := `{
		"name": "attic",
		"initial_age_group": "old_age",
		"sequences": [
			{"trigger_event": "no_such_event", "completion_event": "also_missing", "sequence": "ghost"}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "levels", "attic.json"), []byte(bad), 0o644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected load to fail on dangling references")
	}
	for _, want := range []string{"ghost", "no_such_event", "also_missing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestLoad_ReportsUnknownActionPayloads(t *testing.T) {
	dir := writeTestContent(t)

	bad := `{
		"name": "bad_seq",
		"actions": [
			{"kind": "pick_item", "item": "no_such_item"},
			{"kind": "change_age_group", "age_group": "infancy"},
			{"kind": "teleport"}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "sequences", "bad_seq.json"), []byte(bad), 0o644); err != nil {
		t.Fatalf("Failed to write sequence: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected load to fail on invalid actions")
	}
	for _, want := range []string{"no_such_item", "infancy", "teleport"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestLoad_MissingStartLevel(t *testing.T) {
	dir := writeTestContent(t)
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(`{"start_level": "nowhere"}`), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "nowhere") {
		t.Errorf("Expected start_level validation error, got: %v", err)
	}
}
