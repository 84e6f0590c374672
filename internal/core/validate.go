package core

import (
	"fmt"
	"regexp"
	"strings"

	"apt-archives/internal/types"
)

var keyIDPattern = regexp.MustCompile(`^[0-9A-F]{40}$`)

// ValidateRepository runs the ordered validation pipeline for a repository
// value. Each step returns a typed failure that aborts construction; steps
// with cross-field dependencies run after all fields have been read.
func ValidateRepository(repository types.Repository) error {
	switch repo := repository.(type) {
	case types.AptRepository:
		return validateApt(repo)
	case types.PPARepository:
		return validatePPA(repo)
	case types.UCARepository:
		return validateUCA(repo)
	default:
		return validationError("", fmt.Sprintf("unhandled repository variant %T.", repository))
	}
}

func validateApt(repo types.AptRepository) error {
	if repo.URL == "" {
		return validationError("", "invalid URL. URLs must be non-empty strings.")
	}
	if !keyIDPattern.MatchString(repo.KeyID) {
		return validationError(repo.URL,
			fmt.Sprintf("invalid key identifier '%s'. Key IDs must be 40 upper case hex characters.", repo.KeyID))
	}
	for _, format := range repo.Formats {
		if format != types.SourceFormatDeb && format != types.SourceFormatDebSrc {
			return validationError(repo.URL,
				fmt.Sprintf("invalid format '%s'. Formats must be 'deb' or 'deb-src'.", format))
		}
	}
	if repo.Path != "" && len(repo.Components) > 0 {
		return validationError(repo.URL, fmt.Sprintf(
			"components %v cannot be combined with path '%s'.", repo.Components, repo.Path))
	}
	if repo.Path != "" && len(repo.Suites) > 0 {
		return validationError(repo.URL, fmt.Sprintf(
			"suites %v cannot be combined with path '%s'.", repo.Suites, repo.Path))
	}
	if len(repo.Suites) > 0 && len(repo.Components) == 0 {
		return validationError(repo.URL, "components must be specified when using suites.")
	}
	if len(repo.Components) > 0 && len(repo.Suites) == 0 {
		return validationError(repo.URL, "suites must be specified when using components.")
	}
	for _, suite := range repo.Suites {
		if strings.HasSuffix(suite, "/") {
			return validationError(repo.URL,
				fmt.Sprintf("invalid suite '%s'. Suites must not end with a '/'.", suite))
		}
	}
	return nil
}

func validatePPA(repo types.PPARepository) error {
	if repo.PPA == "" {
		return validationError("", "invalid PPA. PPAs must be non-empty strings.")
	}
	if _, _, err := SplitPPA(repo.PPA); err != nil {
		return err
	}
	return nil
}

func validateUCA(repo types.UCARepository) error {
	if repo.Cloud == "" {
		return validationError("", "invalid cloud. Clouds must be non-empty strings.")
	}
	if repo.Pocket != types.PocketUpdates && repo.Pocket != types.PocketProposed {
		return validationError(repo.Cloud,
			fmt.Sprintf("invalid pocket '%s'. Pocket must be 'updates' or 'proposed'.", repo.Pocket))
	}
	return nil
}

// SplitPPA splits an "owner/name" slug into its two halves. Anything other
// than exactly one separator with non-empty halves is rejected.
func SplitPPA(ppa string) (owner string, name string, err error) {
	parts := strings.Split(ppa, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", validationError(ppa, "invalid PPA format. PPAs must be of the form 'owner/name'.")
	}
	return parts[0], parts[1], nil
}
