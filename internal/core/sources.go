package core

import (
	"fmt"
	"strings"

	"apt-archives/internal/types"
)

// SourceForRepository derives the apt source definition for one repository.
// codename is the host's distribution series (e.g. "jammy"); keyringPath is
// the keyring file the source is signed by. The returned name identifies
// the repository for file naming and is unique per configuration entry.
//
// Exact-path repositories use the path as the sole suite with a trailing
// slash and carry no components; PPA and cloud-archive repositories always
// serve the "main" component.
func SourceForRepository(repository types.Repository, codename string, keyringPath string) (string, types.AptSource, error) {
	switch repo := repository.(type) {
	case types.AptRepository:
		suites := repo.Suites
		if repo.Path != "" {
			suites = []string{pathSuite(repo.Path)}
		}
		return repo.Name(), types.AptSource{
			Types:         repo.Formats,
			URIs:          []string{repo.URL},
			Suites:        suites,
			Components:    repo.Components,
			Architectures: repo.Architectures,
			SignedBy:      keyringPath,
		}, nil
	case types.PPARepository:
		return repo.Name(), types.AptSource{
			Types:      []types.SourceFormat{types.SourceFormatDeb},
			URIs:       []string{repo.SourceURL()},
			Suites:     []string{codename},
			Components: []string{"main"},
			SignedBy:   keyringPath,
		}, nil
	case types.UCARepository:
		pocket := repo.Pocket
		if pocket == "" {
			pocket = types.DefaultPocket
		}
		suite := fmt.Sprintf("%s-%s/%s", codename, pocket, repo.Cloud)
		return repo.Name(), types.AptSource{
			Types:      []types.SourceFormat{types.SourceFormatDeb},
			URIs:       []string{types.UCAArchiveURL},
			Suites:     []string{suite},
			Components: []string{"main"},
			SignedBy:   keyringPath,
		}, nil
	default:
		return "", types.AptSource{}, validationError("",
			fmt.Sprintf("unsupported repository type %T", repository))
	}
}

// pathSuite turns an exact path into a deb822 suite: paths act as suites
// only when they end in a slash.
func pathSuite(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
