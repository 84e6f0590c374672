package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-archives/internal/adapters"
	"apt-archives/internal/types"
)

// WritePreferences derives apt pin preferences from the configured
// repositories and writes them as a preferences file. Repositories without
// a priority contribute no paragraph.
func (s Service) WritePreferences(ctx context.Context, req PreferencesRequest) (PreferencesResult, error) {
	if err := ctx.Err(); err != nil {
		return PreferencesResult{}, err
	}
	path := strings.TrimSpace(req.RepositoriesPath)
	if path == "" {
		return PreferencesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repositories path is required")
	}
	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		output = adapters.DefaultPreferencesPath
	}
	repositories, err := s.Repositories.LoadRepositories(path)
	if err != nil {
		return PreferencesResult{}, err
	}
	var preferences []types.Preference
	for _, repository := range repositories {
		if repository.PinPriority() == 0 {
			continue
		}
		preferences = append(preferences, types.Preference{
			Pin:      repository.Pin(),
			Priority: repository.PinPriority(),
		})
	}
	if err := s.Preferences.Write(output, preferences); err != nil {
		return PreferencesResult{}, err
	}
	return PreferencesResult{Written: len(preferences)}, nil
}
