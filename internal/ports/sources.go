package ports

import (
	"io"

	"apt-archives/internal/types"
)

// SourcesCodecPort parses and serializes apt sources in one on-disk format.
type SourcesCodecPort interface {
	Parse(r io.Reader) ([]types.AptSource, error)
	Serialize(w io.Writer, sources []types.AptSource) error
}

// RepositoriesConfigPort loads the package-repositories configuration list.
type RepositoriesConfigPort interface {
	LoadRepositories(path string) ([]types.Repository, error)
}

// PreferencesPort reads and writes apt preferences paragraphs.
type PreferencesPort interface {
	Read(path string) ([]types.Preference, error)
	Write(path string, preferences []types.Preference) error
}
