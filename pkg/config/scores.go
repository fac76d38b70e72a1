package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Scores persists the best level and line count reached on this machine.
type Scores struct {
	BestLevel int `yaml:"best_level"`
	BestLines int `yaml:"best_lines"`

	path   string
	logger *log.Logger
	mu     sync.Mutex
}

// LoadScores reads the scores file at path. A missing file gives level 1 and
// no lines.
func LoadScores(path string, logger *log.Logger) (*Scores, error) {
	s := &Scores{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.BestLevel = 1
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if s.BestLevel < 1 {
		s.BestLevel = 1
	}
	if s.BestLines < 0 {
		s.BestLines = 0
	}

	return s, nil
}

func (s *Scores) Best() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.BestLevel, s.BestLines
}

// RecordBest stores new best values and writes the file. A failed write is
// logged and the values stay in memory.
func (s *Scores) RecordBest(level int, lines int) {
	s.mu.Lock()
	s.BestLevel, s.BestLines = level, lines
	s.mu.Unlock()

	if err := s.Save(); err != nil && s.logger != nil {
		s.logger.Error("failed to save scores", "path", s.path, "err", err)
	}
}

func (s *Scores) Save() error {
	s.mu.Lock()
	data, err := yaml.Marshal(s)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create scores dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write scores file: %w", err)
	}
	return nil
}
