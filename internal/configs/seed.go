package configs

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed is written when the service starts without a document.
func DefaultSeed() []Entry {
	return []Entry{
		{Key: "welcome_msg", Value: json.RawMessage(`"Welcome to the cloud control system"`)},
		{Key: "api_version", Value: json.RawMessage(`"1.0.0"`)},
	}
}

// LoadSeed reads the initial entries from a YAML mapping, keeping the
// order in which keys appear in the file.
func LoadSeed(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return parseSeed(raw)
}

func parseSeed(raw []byte) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse seed: top level must be a mapping, got %s", kindName(m.Kind))
	}
	out := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		var value any
		if err := m.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("parse seed key %q: %w", m.Content[i].Value, err)
		}
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("seed key %q is not JSON compatible: %w", m.Content[i].Value, err)
		}
		out = append(out, Entry{Key: m.Content[i].Value, Value: b})
	}
	return out, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}
