package out

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flo8/internal/modules/provider/domain"
	providerout "flo8/internal/modules/provider/port/out"
)

type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath string) providerout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "providers", "providers.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read provider manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode provider manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	return manifests, nil
}

// SHA256Verifier compares a provider binary against the hash pinned in its
// manifest.
type SHA256Verifier struct{}

func NewSHA256Verifier() providerout.ChecksumVerifier {
	return &SHA256Verifier{}
}

func (SHA256Verifier) Verify(_ context.Context, manifest domain.Manifest) error {
	f, err := os.Open(manifest.Binary)
	if err != nil {
		return fmt.Errorf("open provider binary: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash provider binary: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != manifest.SHA256 {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, manifest.Name)
	}
	return nil
}
