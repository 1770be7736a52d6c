package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pmis/config"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/files", "")
	if err != nil {
		t.Fatal(err)
	}

	u, err := s.Put(context.Background(), "../../RA-1.pdf", []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "/files/") || !strings.HasSuffix(u, "_RA-1.pdf") {
		t.Fatalf("url = %q", u)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("files = %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("read back %q, %v", data, err)
	}

	if err := s.Delete(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("file not deleted")
	}
	if err := s.Delete(context.Background(), u); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalStoreURL(t *testing.T) {
	tests := []struct {
		prefix, base, want string
	}{
		{"/files", "", "/files/a.pdf"},
		{"files/", "", "/files/a.pdf"},
		{"/docs", "https://pmis.example.org/", "https://pmis.example.org/docs/a.pdf"},
	}
	for _, tt := range tests {
		s := &LocalStore{PublicPrefix: tt.prefix, BaseURL: tt.base}
		if got := s.URL("a.pdf"); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.prefix, tt.base, got, tt.want)
		}
	}
}

func TestLocalStoreCleanup(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewLocalStore(dir, "", "")
	old := filepath.Join(dir, "old.pdf.tmp")
	fresh := filepath.Join(dir, "fresh.pdf.tmp")
	doc := filepath.Join(dir, "bill.pdf")
	past := time.Now().Add(-48 * time.Hour)
	for _, p := range []string{old, fresh, doc} {
		_ = os.WriteFile(p, []byte("x"), 0o644)
	}
	_ = os.Chtimes(old, past, past)
	_ = os.Chtimes(doc, past, past)

	if err := s.CleanupTemp(24 * time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale temp file kept")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh temp file removed")
	}
	if _, err := os.Stat(doc); err != nil {
		t.Error("stored document removed")
	}
}

func TestNewPicksDriver(t *testing.T) {
	st, err := New(context.Background(), config.StorageConfig{Driver: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.(*LocalStore); !ok {
		t.Errorf("got %T", st)
	}
	if _, err := New(context.Background(), config.StorageConfig{Driver: "tape"}); err == nil {
		t.Error("unknown driver accepted")
	}
	if _, err := New(context.Background(), config.StorageConfig{Driver: "r2"}); err == nil {
		t.Error("r2 without settings accepted")
	}
}
