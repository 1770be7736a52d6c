package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

type LocalStore struct {
	BaseDir      string // directory holding the files
	PublicPrefix string // URL prefix the files are served under, e.g. "/files"
	BaseURL      string // optional scheme+host used to build absolute URLs
}

// NewLocalStore creates baseDir if it is missing.
func NewLocalStore(baseDir, publicPrefix, baseURL string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "./documents"
	}
	if publicPrefix == "" {
		publicPrefix = "/files"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}
	return &LocalStore{BaseDir: baseDir, PublicPrefix: publicPrefix, BaseURL: baseURL}, nil
}

// Put writes data under a random prefix and returns its URL.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte, _ string) (string, error) {
	name = filepath.Base(name)

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	final := hex.EncodeToString(randBytes) + "_" + name

	p := filepath.Join(s.BaseDir, final)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return s.URL(final), nil
}

// URL returns BaseURL + PublicPrefix + "/" + name, or a relative URL when no
// BaseURL is set.
func (s *LocalStore) URL(name string) string {
	prefix := "/" + strings.Trim(s.PublicPrefix, "/")
	if prefix == "/" {
		prefix = "/files"
	}
	rel := path.Join(prefix, url.PathEscape(name))
	if s.BaseURL == "" {
		return rel
	}
	return strings.TrimRight(s.BaseURL, "/") + rel
}

// Delete removes the file a URL from Put points at. A missing file is not an
// error.
func (s *LocalStore) Delete(_ context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	name, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	err = os.Remove(filepath.Join(s.BaseDir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CleanupTemp removes partial writes older than d. Stored documents are
// never touched.
func (s *LocalStore) CleanupTemp(d time.Duration) error {
	now := time.Now()
	return filepath.WalkDir(s.BaseDir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".tmp") {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) > d {
			_ = os.Remove(p)
		}
		return nil
	})
}
