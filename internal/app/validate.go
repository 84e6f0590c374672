package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Validate loads and validates the configured package repositories and
// reports their derived pin strings.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.RepositoriesPath)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repositories path is required")
	}
	repositories, err := s.Repositories.LoadRepositories(path)
	if err != nil {
		return ValidateResult{}, err
	}
	pins := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		pins = append(pins, repository.Pin())
	}
	return ValidateResult{Count: len(repositories), Pins: pins}, nil
}
