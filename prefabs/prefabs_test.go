package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSceneSpec(t *testing.T) {
	scene, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if scene.Physics.GravityY != -9.81 || scene.Physics.TPS != 60 || scene.Physics.Iterations != 20 || scene.Physics.CollisionSlop != 0.01 {
		t.Fatalf("unexpected physics %+v", scene.Physics)
	}
	if scene.RespawnPrefab != "player_respawn.yaml" {
		t.Fatalf("unexpected respawn prefab %q", scene.RespawnPrefab)
	}
	for _, name := range scene.Spawn {
		if _, err := LoadEntityBuildSpec(name); err != nil {
			t.Fatalf("scene lists %s but it does not load: %v", name, err)
		}
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadEntityBuildSpec("nope.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
}

func TestPlayerPrefabsDiffer(t *testing.T) {
	tests := []struct {
		file       string
		wantTuning FloatingCharacterComponentSpec
		wantTOI    float64
	}{
		{"player.yaml", FloatingCharacterComponentSpec{RideHeight: 0.1, SpringStrength: 11.5, SpringDamper: 5.0}, 0.5},
		{"prefabs/player_respawn.yaml", FloatingCharacterComponentSpec{RideHeight: 0.5, SpringStrength: 0.5, SpringDamper: 0.5}, 5.0},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tuning, err := DecodeComponentSpec[FloatingCharacterComponentSpec](spec.Components["floating_character"])
			if err != nil {
				t.Fatalf("decode tuning: %v", err)
			}
			if tuning != tc.wantTuning {
				t.Fatalf("expected %+v, got %+v", tc.wantTuning, tuning)
			}
			if len(spec.Children) != 1 {
				t.Fatalf("expected one probe child, got %d", len(spec.Children))
			}
			probe, err := DecodeComponentSpec[ShapeCasterComponentSpec](spec.Children[0].Components["shape_caster"])
			if err != nil {
				t.Fatalf("decode probe: %v", err)
			}
			if probe.MaxTimeOfImpact != tc.wantTOI {
				t.Fatalf("expected probe range %v, got %v", tc.wantTOI, probe.MaxTimeOfImpact)
			}
		})
	}
}

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		in     string
		x, y   float64
		hasErr bool
	}{
		{"", 0, -1, false},
		{"Down", 0, -1, false},
		{"up", 0, 1, false},
		{"left", -1, 0, false},
		{"right", 1, 0, false},
		{"diagonal", 0, 0, true},
	}
	for _, tc := range tests {
		x, y, err := ShapeCasterComponentSpec{Direction: tc.in}.DirectionVector()
		if (err != nil) != tc.hasErr || x != tc.x || y != tc.y {
			t.Fatalf("%q: got (%v, %v, %v)", tc.in, x, y, err)
		}
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || got != (TransformComponentSpec{}) {
		t.Fatalf("nil should decode to the zero value, got %+v %v", got, err)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: Player\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name != "player.yaml" {
				t.Fatalf("unexpected event for %q", name)
			}
			return
		case <-deadline:
			t.Fatalf("no event for player.yaml")
		}
	}
}

func TestWatcherPollEmpty(t *testing.T) {
	var w *Watcher
	if got := w.Poll(); got != nil {
		t.Fatalf("nil watcher should poll nothing")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("nil watcher close: %v", err)
	}
}
