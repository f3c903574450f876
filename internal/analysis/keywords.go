package analysis

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordSet is a list of indicative terms and phrases.
type KeywordSet []string

// Count returns how many keywords of the set occur in text. Matching is
// case-insensitive substring containment, not tokenized, so a phrase like
// "end it" matches inside longer sentences. A single text can contribute to
// multiple keywords.
func (s KeywordSet) Count(text string) int {
	lower := strings.ToLower(text)

	count := 0
	for _, keyword := range s {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			count++
		}
	}
	return count
}

// KeywordConfig holds the three fixed keyword sets the engine scores with.
type KeywordConfig struct {
	Depression KeywordSet `yaml:"depression"`
	Anxiety    KeywordSet `yaml:"anxiety"`
	Suicidal   KeywordSet `yaml:"suicidal"`
}

// DefaultKeywords returns the built-in screening terms.
func DefaultKeywords() KeywordConfig {
	return KeywordConfig{
		Depression: KeywordSet{
			"sad", "depressed", "hopeless", "worthless", "empty", "tired",
			"exhausted", "sleep", "insomnia", "suicide", "death", "end it",
			"no point", "give up", "meaningless", "numb", "alone", "isolated",
			"crying", "tears", "hurt", "pain", "broken",
		},
		Anxiety: KeywordSet{
			"anxious", "anxiety", "worry", "worried", "nervous", "panic",
			"fear", "scared", "afraid", "stress", "stressed", "overwhelmed",
			"restless", "tense", "racing", "cant breathe", "heart racing",
		},
		Suicidal: KeywordSet{
			"kill myself", "end it all", "suicide", "want to die",
			"better off dead", "no reason to live", "end my life",
			"hang myself", "overdose", "jump off",
		},
	}
}

// LoadKeywords reads keyword sets from a YAML file. An empty path returns
// the built-in defaults; a section missing from the file falls back to the
// default set for that condition.
func LoadKeywords(path string) (KeywordConfig, error) {
	defaults := DefaultKeywords()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return KeywordConfig{}, fmt.Errorf("failed to read keyword config: %w", err)
	}

	var cfg KeywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KeywordConfig{}, fmt.Errorf("failed to parse keyword config: %w", err)
	}

	if len(cfg.Depression) == 0 {
		cfg.Depression = defaults.Depression
	}
	if len(cfg.Anxiety) == 0 {
		cfg.Anxiety = defaults.Anxiety
	}
	if len(cfg.Suicidal) == 0 {
		cfg.Suicidal = defaults.Suicidal
	}

	return cfg, nil
}
