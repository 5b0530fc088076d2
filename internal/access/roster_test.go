package access

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.list")

	r, err := Load(path, []int64{10, 20})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.IsAdmin(10) || !r.IsAdmin(20) || r.IsAdmin(30) {
		t.Fatalf("roster membership wrong: %v", r.IDs())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("seed was not persisted: %v", err)
	}
	if string(data) != "10,20" {
		t.Fatalf("persisted roster = %q; want \"10,20\"", data)
	}
}

func TestLoadPrefersFileOverSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.list")
	if err := os.WriteFile(path, []byte("77"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Load(path, []int64{10})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.IsAdmin(10) || !r.IsAdmin(77) {
		t.Fatalf("roster = %v; want only 77", r.IDs())
	}
}

func TestAddAndRemoveSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.list")

	r, err := Load(path, []int64{1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	added, err := r.Add(2)
	if err != nil || !added {
		t.Fatalf("add = %v, %v; want true, nil", added, err)
	}
	if added, _ := r.Add(2); added {
		t.Fatal("duplicate add reported true")
	}
	removed, err := r.Remove(1)
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v; want true, nil", removed, err)
	}
	if removed, _ := r.Remove(99); removed {
		t.Fatal("absent remove reported true")
	}

	again, err := Load(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !again.IsAdmin(2) || again.IsAdmin(1) {
		t.Fatalf("reloaded roster = %v; want only 2", again.IDs())
	}
}

func TestLoadKeepsValidPrefixOfCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.list")
	if err := os.WriteFile(path, []byte("5,abc,7"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.IsAdmin(5) || r.IsAdmin(7) {
		t.Fatalf("roster = %v; want only the prefix before the bad entry", r.IDs())
	}
}
