package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	Dir string `env:"FILES_DIR" envDefault:"files"`
}

// Store keeps uploaded attachments and payment proofs on local disk under
// generated collision-resistant names.
type Store struct {
	log *zap.Logger
	dir string
}

type option func(*Store)

func Logger(log *zap.Logger) option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(cfg *Config, options ...option) (*Store, error) {
	s := &Store{
		log: zap.NewNop(),
		dir: cfg.Dir,
	}

	for _, opt := range options {
		opt(s)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed create files directory: %w", err)
	}

	return s, nil
}

// Save writes data under a uuid-based name keeping the hint's extension.
// A partially written file is removed before the error is returned, so a
// referenced path always points at complete content.
func (s *Store) Save(nameHint string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(nameHint))
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.log.Error("failed remove partial file", zap.String("path", path), zap.Error(rmErr))
		}
		return "", fmt.Errorf("failed write file: %w", err)
	}

	return path, nil
}

// Delete is idempotent: removing a missing file is not an error.
func (s *Store) Delete(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed remove file: %w", err)
	}

	return nil
}
