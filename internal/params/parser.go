package params

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// Pair is one parsed key=value argument.
type Pair struct {
	Key   string
	Value string
}

// ParseOrderedPairs converts "key=value" strings into pairs, keeping argument order.
// flag names the CLI flag in error messages.
func ParseOrderedPairs(flag string, pairs []string) ([]Pair, error) {
	result := make([]Pair, 0, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%s %q is not in key=value format (example: --%s listings=raw_listings): %w",
				flag, pair, flag, bqseed.ErrInvalidConfig)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%s has empty key: %q: %w", flag, pair, bqseed.ErrInvalidConfig)
		}

		result = append(result, Pair{Key: key, Value: strings.TrimSpace(value)})
	}

	return result, nil
}

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Later duplicates win.
//
// Example:
//
//	labels, err := ParseKeyValuePairs([]string{"team=data", "env=dev"})
//	// Returns: map[string]string{"team": "data", "env": "dev"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	ordered, err := ParseOrderedPairs("label", pairs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(ordered))
	for _, p := range ordered {
		result[p.Key] = p.Value
	}
	return result, nil
}

// ParseMappings turns --table arguments into file-to-table mappings in argument order.
func ParseMappings(pairs []string) ([]bqseed.FileTableMapping, error) {
	ordered, err := ParseOrderedPairs("table", pairs)
	if err != nil {
		return nil, err
	}
	mappings := make([]bqseed.FileTableMapping, 0, len(ordered))
	for _, p := range ordered {
		if p.Value == "" {
			return nil, fmt.Errorf("table for file %q is empty: %w", p.Key, bqseed.ErrInvalidConfig)
		}
		mappings = append(mappings, bqseed.FileTableMapping{Name: p.Key, Table: p.Value})
	}
	return mappings, nil
}

const maxLabelLength = 63

var (
	labelKeyPattern   = regexp.MustCompile(`^[\p{Ll}\p{Lo}][\p{Ll}\p{Lo}\p{N}_-]*$`)
	labelValuePattern = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{N}_-]*$`)
)

// ValidateLabels checks BigQuery job label rules: keys start with a lowercase
// letter, keys and values use lowercase letters, digits, underscores and dashes,
// and neither exceeds 63 characters.
func ValidateLabels(labels map[string]string) error {
	for k, v := range labels {
		if len([]rune(k)) > maxLabelLength || !labelKeyPattern.MatchString(k) {
			return fmt.Errorf("invalid label key %q: %w", k, bqseed.ErrInvalidConfig)
		}
		if len([]rune(v)) > maxLabelLength || !labelValuePattern.MatchString(v) {
			return fmt.Errorf("invalid value %q for label %q: %w", v, k, bqseed.ErrInvalidConfig)
		}
	}
	return nil
}

// LabelValue turns s into a legal label value: lowercased, characters outside
// the label alphabet replaced by '_', cut to 63 characters.
func LabelValue(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) > maxLabelLength {
		runes = runes[:maxLabelLength]
	}
	for i, r := range runes {
		if !unicode.In(r, unicode.Ll, unicode.Lo, unicode.N) && r != '_' && r != '-' {
			runes[i] = '_'
		}
	}
	return string(runes)
}
