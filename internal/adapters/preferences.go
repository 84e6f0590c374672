package adapters

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

// DefaultPreferencesPath is where apt reads pin preferences written by this
// tool.
const DefaultPreferencesPath = "/etc/apt/preferences.d/apt-archives"

// PreferencesAdapter reads and writes apt preferences files: paragraphs of
// Package/Pin/Pin-Priority fields separated by blank lines.
type PreferencesAdapter struct{}

func NewPreferencesAdapter() PreferencesAdapter {
	return PreferencesAdapter{}
}

// Read parses an existing preferences file. A missing file yields no
// preferences. Unrecognized fields (such as Explanation) are logged and
// ignored.
func (a PreferencesAdapter) Read(path string) ([]types.Preference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read preferences file").
			WithCause(err)
	}
	var preferences []types.Preference
	for _, paragraph := range strings.Split(string(data), "\n\n") {
		preference, ok, err := parsePreferenceParagraph(paragraph)
		if err != nil {
			return nil, err
		}
		if ok {
			preferences = append(preferences, preference)
		}
	}
	return preferences, nil
}

func parsePreferenceParagraph(paragraph string) (types.Preference, bool, error) {
	var preference types.Preference
	seen := false
	for _, line := range strings.Split(paragraph, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		field, value, found := strings.Cut(stripped, ": ")
		if !found {
			log.Debug().Str("line", stripped).Msg("skipping malformed preferences line")
			continue
		}
		switch field {
		case "Package":
			// Always written as "*"; nothing to keep.
		case "Pin":
			preference.Pin = value
			seen = true
		case "Pin-Priority":
			priority, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return types.Preference{}, false, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid pin priority '%s'", value)).
					WithCause(err)
			}
			if priority == 0 {
				return types.Preference{}, false, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("invalid priority: Priority cannot be zero.")
			}
			preference.Priority = priority
			seen = true
		default:
			log.Debug().Str("field", field).Msg("skipping unknown preferences field")
		}
	}
	return preference, seen, nil
}

// Write renders preferences deterministically, one paragraph per entry.
// Entries without a priority are skipped; a zero priority elsewhere has
// already been rejected at construction. When nothing remains, any file
// from a previous run is removed so stale pins do not survive a
// configuration change.
func (a PreferencesAdapter) Write(path string, preferences []types.Preference) error {
	var paragraphs []string
	for _, preference := range preferences {
		if preference.Priority == 0 {
			continue
		}
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Package: *\nPin: %s\nPin-Priority: %d\n", preference.Pin, preference.Priority))
	}
	if len(paragraphs) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(strings.Join(paragraphs, "\n")), 0644)
}

var _ ports.PreferencesPort = PreferencesAdapter{}
