package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"apt-archives/internal/core"
	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

// RepositoriesFileAdapter loads the package-repositories configuration list
// from a YAML file. The file holds either a bare list of repository maps or
// a document with a top-level "package-repositories" key, as emitted by the
// host build tool.
type RepositoriesFileAdapter struct{}

func NewRepositoriesFileAdapter() RepositoriesFileAdapter {
	return RepositoriesFileAdapter{}
}

func (a RepositoriesFileAdapter) LoadRepositories(path string) ([]types.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repositories file not found").
			WithCause(err)
	}
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse repositories yaml").
			WithCause(err)
	}
	if wrapper, ok := document.(map[string]any); ok {
		if nested, found := wrapper["package-repositories"]; found {
			document = nested
		}
	}
	return core.UnmarshalRepositories(document)
}

var _ ports.RepositoriesConfigPort = RepositoriesFileAdapter{}
