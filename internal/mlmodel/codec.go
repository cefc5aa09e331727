package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Codec maps a named category to the integer code the expense model was
// trained with.
type Codec interface {
	Encode(category string) (int, error)
}

// LabelCodec is a frozen label encoding loaded from a training artifact.
// The artifact lists the classes in code order, so index equals code.
type LabelCodec struct {
	name  string
	codes map[string]int
}

type labelCodecArtifact struct {
	Classes []string `json:"classes"`
}

// LoadLabelCodec reads a codec artifact from disk. A missing or corrupt
// artifact is a configuration failure and wraps ErrModelUnavailable.
func LoadLabelCodec(name, path string) (*LabelCodec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s codec %s: %v", ErrModelUnavailable, name, path, err)
	}

	var artifact labelCodecArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: parse %s codec %s: %v", ErrModelUnavailable, name, path, err)
	}
	if len(artifact.Classes) == 0 {
		return nil, fmt.Errorf("%w: %s codec %s has no classes", ErrModelUnavailable, name, path)
	}

	codes := make(map[string]int, len(artifact.Classes))
	for i, class := range artifact.Classes {
		codes[class] = i
	}
	return &LabelCodec{name: name, codes: codes}, nil
}

// Encode returns the training-time code for category, or ErrUnknownCategory
// if the category was never seen.
func (c *LabelCodec) Encode(category string) (int, error) {
	code, ok := c.codes[category]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrUnknownCategory, c.name, category)
	}
	return code, nil
}
