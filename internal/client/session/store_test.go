package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

func TestOpen_EmptyDir(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Token() != "" {
		t.Errorf("expected empty token, got %q", s.Token())
	}
	if s.Personal() != nil {
		t.Errorf("expected no identity, got %+v", s.Personal())
	}
}

func TestToken_ReadIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if first, second := s.Token(), s.Token(); first != second {
		t.Errorf("consecutive reads differ: %q vs %q", first, second)
	}
}

func TestSetToken_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	// simulated reload
	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := s2.Token(); got != "tok-123" {
		t.Errorf("expected token to survive reopen, got %q", got)
	}
}

func TestSetPersonal_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p := models.Personal{ID: 7, Nombre: "Ana", Cargo: "Ingeniera", Email: "ana@agua.gub.uy", FechaAlta: "2024-03-01"}
	if err := s.SetPersonal(p); err != nil {
		t.Fatalf("SetPersonal failed: %v", err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got := s2.Personal()
	if got == nil {
		t.Fatal("expected identity to survive reopen, got nil")
	}
	if got.ID != 7 || got.Nombre != "Ana" {
		t.Errorf("unexpected identity after reopen: %+v", got)
	}
}

func TestClearToken_RemovesMemoryAndDurableEntry(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}

	if s.Token() != "" {
		t.Errorf("expected absent token, got %q", s.Token())
	}
	if _, err := os.Stat(filepath.Join(dir, "auth_token")); !os.IsNotExist(err) {
		t.Errorf("expected durable token entry to be gone, stat err = %v", err)
	}
}

func TestClearToken_NothingPersisted(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.ClearToken(); err != nil {
		t.Errorf("ClearToken on empty store failed: %v", err)
	}
}

func TestClearPersonal_RemovesMemoryAndDurableEntry(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetPersonal(models.Personal{ID: 1, Nombre: "X"}); err != nil {
		t.Fatalf("SetPersonal failed: %v", err)
	}
	if err := s.ClearPersonal(); err != nil {
		t.Fatalf("ClearPersonal failed: %v", err)
	}

	if s.Personal() != nil {
		t.Errorf("expected absent identity, got %+v", s.Personal())
	}
	if _, err := os.Stat(filepath.Join(dir, "auth_personal")); !os.IsNotExist(err) {
		t.Errorf("expected durable identity entry to be gone, stat err = %v", err)
	}
}

func TestOpen_CorruptPersonalIsTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "auth_personal"), []byte("not json {"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "auth_token"), []byte("tok"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open must not fail on corrupt identity entry: %v", err)
	}
	if s.Personal() != nil {
		t.Errorf("expected corrupt identity to read as absent, got %+v", s.Personal())
	}
	if s.Token() != "tok" {
		t.Errorf("token should still rehydrate, got %q", s.Token())
	}
}

func TestPersonal_ReturnsCopy(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetPersonal(models.Personal{ID: 1, Nombre: "Ana"}); err != nil {
		t.Fatalf("SetPersonal failed: %v", err)
	}

	got := s.Personal()
	got.Nombre = "mutated"
	if s.Personal().Nombre != "Ana" {
		t.Error("mutating the returned record must not affect the stored one")
	}
}
