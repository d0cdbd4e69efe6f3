package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/annotrim/internal/triage"
)

// Manifest is the YAML export of a run: every renamed pair and every
// quarantined file.
type Manifest struct {
	RunID       string           `yaml:"run_id"`
	Root        string           `yaml:"root"`
	Generated   time.Time        `yaml:"generated"`
	Prefix      string           `yaml:"prefix"`
	Pairs       []Record         `yaml:"pairs"`
	Quarantined []QuarantineItem `yaml:"quarantined,omitempty"`
}

// QuarantineItem is one moved stray file.
type QuarantineItem struct {
	Category string `yaml:"category"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

func quarantineItems(moves []triage.Move) []QuarantineItem {
	items := make([]QuarantineItem, 0, len(moves))
	for _, m := range moves {
		items = append(items, QuarantineItem{Category: string(m.Category), From: m.From, To: m.To})
	}
	return items
}

// WriteManifest encodes m as YAML at path, creating parent directories.
func WriteManifest(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	return f.Close()
}
