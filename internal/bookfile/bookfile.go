// Package bookfile writes finished book definitions to disk as YAML, one
// file per book, named after a slug of the concept.
package bookfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/bookwright/bookwright/internal/catalog"
)

// Definition is the on-disk form of a completed wizard run.
type Definition struct {
	Concept            string    `yaml:"concept"`
	Genre              string    `yaml:"genre,omitempty"`
	Subgenre           string    `yaml:"subgenre,omitempty"`
	Audience           string    `yaml:"audience,omitempty"`
	Style              string    `yaml:"style,omitempty"`
	Length             string    `yaml:"length,omitempty"`
	Structure          string    `yaml:"structure,omitempty"`
	World              string    `yaml:"world,omitempty"`
	ContentPreferences string    `yaml:"content_preferences,omitempty"`
	AdditionalNotes    string    `yaml:"additional_notes,omitempty"`
	SessionID          string    `yaml:"session_id,omitempty"`
	CreatedAt          time.Time `yaml:"created_at"`
}

// FromFormData builds a Definition from wizard form data.
func FromFormData(sessionID string, form map[string]string) Definition {
	return Definition{
		Concept:            form[catalog.KeyConcept],
		Genre:              form[catalog.KeyGenre],
		Subgenre:           form[catalog.KeySubgenre],
		Audience:           form[catalog.KeyAudience],
		Style:              form[catalog.KeyStyle],
		Length:             form[catalog.KeyLength],
		Structure:          form[catalog.KeyStructure],
		World:              form[catalog.KeyWorld],
		ContentPreferences: form[catalog.KeyContent],
		AdditionalNotes:    form["additionalNotes"],
		SessionID:          sessionID,
		CreatedAt:          time.Now().UTC(),
	}
}

// Filename derives the definition's file name from its concept, e.g.
// "a-heist-novel-set-on.yml". Empty concepts fall back to "book".
func (d Definition) Filename() string {
	words := strings.Fields(d.Concept)
	if len(words) > 5 {
		words = words[:5]
	}
	name := slug.Make(strings.Join(words, " "))
	if name == "" {
		name = "book"
	}
	return name + ".yml"
}

// Write saves the definition under dir, creating the directory if needed.
// Returns the full path written.
func Write(dir string, d Definition) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create book dir: %w", err)
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode book definition: %w", err)
	}
	path := filepath.Join(dir, d.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write book definition: %w", err)
	}
	return path, nil
}

// Read loads a definition back from disk.
func Read(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read book definition: %w", err)
	}
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("decode book definition: %w", err)
	}
	return d, nil
}
