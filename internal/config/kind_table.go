package config

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/grammar"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

//go:embed kind_table.yaml
var kindTableFS embed.FS

const kindTableVersion = 1

type yamlKindTable struct {
	Version int                 `yaml:"version"`
	Kinds   map[string][]string `yaml:"kinds"`
}

// LoadKindTable reads the tag table from path, or the embedded table when path is empty.
func LoadKindTable(path string) (grammar.KindTable, error) {
	data, err := readKindTable(path)
	if err != nil {
		return nil, err
	}
	return ParseKindTable(data)
}

func ParseKindTable(data []byte) (grammar.KindTable, error) {
	var parsed yamlKindTable
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid kind table: %w", err)
	}
	if parsed.Version != 0 && parsed.Version != kindTableVersion {
		return nil, fmt.Errorf("kind table: unsupported version %d", parsed.Version)
	}
	if len(parsed.Kinds) == 0 {
		return nil, fmt.Errorf("kind table has no kinds")
	}

	kinds := make([]string, 0, len(parsed.Kinds))
	for kind := range parsed.Kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	table := make(grammar.KindTable)
	for _, name := range kinds {
		kind := models.QuestionKind(name)
		if !kind.IsValid() {
			return nil, fmt.Errorf("kind table: unknown kind %q", name)
		}
		for _, tag := range parsed.Kinds[name] {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if existing, ok := table[tag]; ok && existing != kind {
				return nil, fmt.Errorf("kind table: tag %q maps to both %s and %s", tag, existing, kind)
			}
			table[tag] = kind
		}
	}
	return table, nil
}

func readKindTable(path string) ([]byte, error) {
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read kind table %s: %w", path, err)
		}
		return data, nil
	}
	return kindTableFS.ReadFile("kind_table.yaml")
}
