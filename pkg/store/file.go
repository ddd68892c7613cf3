package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

type scoreFile struct {
	HighScore int `json:"highScore"`
}

// FileStore keeps the high score in a small JSON file
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// DefaultFilePath returns ~/.gridsnake/highscore.json
func DefaultFilePath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(dir, ".gridsnake", "highscore.json"), nil
}

// NewFileStore creates a store backed by path. The file is created on the
// first write.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{path: path, logger: logger}
}

// HighScore returns the stored score, 0 if the file is missing or corrupt
func (s *FileStore) HighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read high score file", "path", s.path, "err", err)
		}
		return 0
	}

	var sf scoreFile
	if err := json.Unmarshal(data, &sf); err != nil {
		s.logger.Warn("ignoring corrupt high score file", "path", s.path, "err", err)
		return 0
	}
	if sf.HighScore < 0 {
		return 0
	}
	return sf.HighScore
}

// SetHighScore writes score unless the file already holds a higher one
func (s *FileStore) SetHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current := s.read(); current > score {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "create score directory")
	}
	data, err := json.Marshal(scoreFile{HighScore: score})
	if err != nil {
		return errors.Wrap(err, "encode high score")
	}

	// Write then rename so a crash never leaves a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "write high score")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replace high score file")
}
