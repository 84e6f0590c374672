package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/adapters"
)

// InstallKeys installs the signing key of every configured repository that
// is not installed yet. Keys found under the key-assets directory are
// preferred over keyserver fetches.
func (s Service) InstallKeys(ctx context.Context, req InstallKeysRequest) (InstallKeysResult, error) {
	path := strings.TrimSpace(req.RepositoriesPath)
	if path == "" {
		return InstallKeysResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repositories path is required")
	}
	repositories, err := s.Repositories.LoadRepositories(path)
	if err != nil {
		return InstallKeysResult{}, err
	}

	store := adapters.NewKeyStoreAdapter(req.KeyringsDir, req.KeyAssetsDir, s.KeyTool, s.PPA)
	assert.NotEmpty(ctx, store.KeyringsDir, "keyrings directory must be set")

	result := InstallKeysResult{}
	for _, repository := range repositories {
		changed, err := store.InstallRepositoryKey(ctx, repository)
		if err != nil {
			return result, err
		}
		if changed {
			result.Installed++
			log.Info().Str("pin", repository.Pin()).Msg("installed repository key")
		} else {
			result.Unchanged++
			log.Debug().Str("pin", repository.Pin()).Msg("repository key already installed")
		}
	}
	return result, nil
}
