// Package agent holds the conversational pieces: intent classification and
// the per-session lead slot-filling state machine.
package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leadline-ai/leadline/internal/domain"
)

// KeywordSets are the intent keyword lists. They are data, not logic: the
// matching algorithm never changes when the sets are swapped out.
type KeywordSets struct {
	Sales    []string `yaml:"sales"`
	Support  []string `yaml:"support"`
	Chitchat []string `yaml:"chitchat"`
}

// DefaultKeywordSets returns the built-in keyword lists.
func DefaultKeywordSets() KeywordSets {
	return KeywordSets{
		Sales: []string{
			"price", "pricing", "cost", "membership", "package", "plan",
			"offer", "discount", "book", "booking", "reserve", "signup", "sign up",
		},
		Support: []string{
			"problem", "issue", "error", "cancel", "refund", "help", "support",
		},
		Chitchat: []string{
			"hi", "hello", "how are you", "thanks",
		},
	}
}

// LoadKeywordSets reads keyword sets from a YAML file. Empty lists in the
// file keep their built-in defaults.
func LoadKeywordSets(path string) (KeywordSets, error) {
	sets := DefaultKeywordSets()

	data, err := os.ReadFile(path)
	if err != nil {
		return sets, fmt.Errorf("read keyword file: %w", err)
	}

	var loaded KeywordSets
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return sets, fmt.Errorf("parse keyword file: %w", err)
	}

	if len(loaded.Sales) > 0 {
		sets.Sales = loaded.Sales
	}
	if len(loaded.Support) > 0 {
		sets.Support = loaded.Support
	}
	if len(loaded.Chitchat) > 0 {
		sets.Chitchat = loaded.Chitchat
	}
	return sets, nil
}

// Classifier maps a message to an intent by case-insensitive substring
// match against the keyword sets in strict priority order: sales, then
// support, then chitchat. No match falls through to general.
type Classifier struct {
	sets KeywordSets
}

func NewClassifier(sets KeywordSets) *Classifier {
	return &Classifier{sets: sets}
}

// Classify is a pure function of the message and the configured sets.
func (c *Classifier) Classify(message string) domain.Intent {
	text := strings.ToLower(message)

	if containsAny(text, c.sets.Sales) {
		return domain.IntentSales
	}
	if containsAny(text, c.sets.Support) {
		return domain.IntentSupport
	}
	if containsAny(text, c.sets.Chitchat) {
		return domain.IntentChitchat
	}
	return domain.IntentGeneral
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
