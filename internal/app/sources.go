package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/adapters"
	"apt-archives/internal/core"
	"apt-archives/internal/types"
)

// WriteSources renders one deb822 .sources file per configured repository
// into the sources directory. Files are named archives-<name>.sources and
// are left untouched when their content is already current, so repeated
// runs do not churn apt's state.
func (s Service) WriteSources(ctx context.Context, req SourcesRequest) (SourcesResult, error) {
	path := strings.TrimSpace(req.RepositoriesPath)
	if path == "" {
		return SourcesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repositories path is required")
	}
	codename := strings.TrimSpace(req.Codename)
	if codename == "" {
		return SourcesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution codename is required")
	}
	sourcesDir := strings.TrimSpace(req.SourcesDir)
	if sourcesDir == "" {
		sourcesDir = adapters.DefaultSourcesDir
	}
	repositories, err := s.Repositories.LoadRepositories(path)
	if err != nil {
		return SourcesResult{}, err
	}
	if err := os.MkdirAll(sourcesDir, 0755); err != nil {
		return SourcesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sources directory").
			WithCause(err)
	}

	result := SourcesResult{}
	for _, repository := range repositories {
		keyID, err := s.signingKeyID(ctx, repository)
		if err != nil {
			return result, err
		}
		keyringPath := adapters.KeyringPath(req.KeyringsDir, keyID)
		name, source, err := core.SourceForRepository(repository, codename, keyringPath)
		if err != nil {
			return result, err
		}
		sourcesFile := filepath.Join(sourcesDir, "archives-"+name+".sources")
		changed, err := s.writeSourcesFile(sourcesFile, source)
		if err != nil {
			return result, err
		}
		if changed {
			result.Written++
			log.Info().Str("file", sourcesFile).Msg("wrote sources file")
		} else {
			result.Unchanged++
			log.Debug().Str("file", sourcesFile).Msg("sources file already current")
		}
	}
	return result, nil
}

// signingKeyID resolves the fingerprint whose keyring signs the repository.
func (s Service) signingKeyID(ctx context.Context, repository types.Repository) (string, error) {
	switch repo := repository.(type) {
	case types.AptRepository:
		return repo.KeyID, nil
	case types.PPARepository:
		return s.PPA.SigningKeyID(ctx, repo.PPA)
	default:
		return types.UCAKeyID, nil
	}
}

func (s Service) writeSourcesFile(path string, source types.AptSource) (bool, error) {
	rendered := adapters.Deb822Paragraph(source)
	if existing, err := os.ReadFile(path); err == nil && string(existing) == rendered {
		return false, nil
	}
	if err := s.Deb822.WriteSources(path, []types.AptSource{source}); err != nil {
		return false, err
	}
	return true, nil
}
