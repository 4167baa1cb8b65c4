package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/minaorangina/luckydraw/deck"
	"gopkg.in/yaml.v3"
)

var (
	ErrMalformedConditions = errors.New("conditions must be a list of records")
	ErrUnknownFormat       = errors.New("unknown conditions file format")
)

// ParseJSON reads condition records from a JSON array.
// Fields that are missing or malformed become wildcards; records that are
// not objects are skipped. A null document is an empty list; anything after
// the array is an error.
func ParseJSON(data []byte) (Conditions, error) {
	var records []interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrMalformedConditions, err)
	}
	return fromRecords(records), nil
}

// ParseYAML reads condition records from a YAML sequence, with the same
// leniency as ParseJSON
func ParseYAML(data []byte) (Conditions, error) {
	var records []interface{}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrMalformedConditions, err)
	}
	return fromRecords(records), nil
}

// LoadFile parses a condition file, picking the format from its extension
func LoadFile(path string) (Conditions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conditions{}, fmt.Errorf("read conditions: %w", err)
	}

	var cs Conditions
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cs, err = ParseJSON(data)
	case ".yaml", ".yml":
		cs, err = ParseYAML(data)
	default:
		return Conditions{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Conditions{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cs, nil
}

// LoadOrEmpty loads path and falls back to an empty list when the source is
// unavailable. Every draw against an empty list resolves to NoMatch.
func LoadOrEmpty(path string, logger *slog.Logger) Conditions {
	if logger == nil {
		logger = slog.Default()
	}

	cs, err := LoadFile(path)
	if err != nil {
		logger.Warn("conditions unavailable, continuing without any", "path", path, "error", err)
		return Conditions{}
	}

	for i, c := range cs.list {
		if c.RankCondition != nil && !c.RankCondition.Known() {
			logger.Warn("unrecognized rank_condition places no constraint",
				"index", i, "rank_condition", string(*c.RankCondition), "description", c.Description)
		}
	}
	logger.Info("conditions loaded", "path", path, "count", cs.Len())
	return cs
}

func fromRecords(records []interface{}) Conditions {
	list := make([]Condition, 0, len(records))
	for _, r := range records {
		fields, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		list = append(list, fromRecord(fields))
	}
	return Conditions{list: list}
}

func fromRecord(fields map[string]interface{}) Condition {
	var c Condition

	if name, ok := stringField(fields, "color"); ok {
		if color, ok := deck.ParseColor(strings.ToLower(name)); ok {
			c.Color = &color
		}
	}
	if name, ok := stringField(fields, "suit"); ok {
		if suit, ok := deck.ParseSuit(strings.ToLower(name)); ok {
			c.Suit = &suit
		}
	}
	if name, ok := stringField(fields, "rank_condition"); ok && name != "" {
		c.RankCondition = RankIs(RankCondition(name))
	}
	if desc, ok := stringField(fields, "description"); ok {
		c.Description = desc
	}

	return c
}

func stringField(fields map[string]interface{}, key string) (string, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
