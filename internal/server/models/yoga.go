package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// YogaPose is a catalog entry and, once saved, a row of the shared cache.
type YogaPose struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Steps       Steps     `json:"steps"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// YogaCatalog is the document served from the local yoga dataset.
type YogaCatalog struct {
	Poses []YogaPose `json:"poses"`
}

// Steps keeps pose instructions in the JSON form they arrived in: a list
// of strings or a single string. The compact JSON text is what the cache
// stores in its steps column, so a list reads back as a list.
type Steps []byte

// StepsFromText restores Steps from the cache column. Text that is not
// JSON is treated as a single plain-text step.
func StepsFromText(text string) Steps {
	if text == "" {
		return nil
	}
	if json.Valid([]byte(text)) {
		return Steps(text)
	}
	b, _ := json.Marshal(text)
	return Steps(b)
}

// Text returns the stored column value.
func (s Steps) Text() string {
	return string(s)
}

func (s Steps) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (s *Steps) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		*s = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return fmt.Errorf("steps must be a string or a list of strings: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*s = buf.Bytes()
	return nil
}
