package types

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Repository is one configured package repository. The concrete variant is
// decided before construction: a map with a "ppa" key unmarshals into
// PPARepository, one with a "cloud" key into UCARepository, anything else
// into AptRepository. Values are treated as immutable once constructed;
// re-validation happens on every unmarshal.
type Repository interface {
	// Pin returns the apt preferences pin string for this repository.
	Pin() string

	// PinPriority returns the configured pin priority, or zero when the
	// repository is not pinned.
	PinPriority() int

	// Marshal returns the repository as a configuration map using the
	// hyphenated external field names.
	Marshal() map[string]any
}

// AptRepository is a plain apt archive identified by its URL and the
// fingerprint of its signing key.
type AptRepository struct {
	Priority      int
	URL           string
	KeyID         string
	KeyServer     string
	Architectures []string
	Formats       []SourceFormat
	Path          string
	Components    []string
	Suites        []string
}

var nonWordRun = regexp.MustCompile(`\W+`)

// Name returns a filesystem-safe identifier derived from the URL.
func (r AptRepository) Name() string {
	return nonWordRun.ReplaceAllString(r.URL, "_")
}

func (r AptRepository) Pin() string {
	domain := r.URL
	if parsed, err := url.Parse(r.URL); err == nil && parsed.Host != "" {
		domain = parsed.Host
	}
	return fmt.Sprintf("origin %q", domain)
}

func (r AptRepository) PinPriority() int { return r.Priority }

func (r AptRepository) Marshal() map[string]any {
	data := map[string]any{
		"type": "apt",
		"url":  r.URL,
	}
	if r.KeyID != "" {
		data["key-id"] = r.KeyID
	}
	if r.KeyServer != "" {
		data["key-server"] = r.KeyServer
	}
	if len(r.Architectures) > 0 {
		data["architectures"] = stringSlice(r.Architectures)
	}
	if len(r.Formats) > 0 {
		formats := make([]any, len(r.Formats))
		for i, format := range r.Formats {
			formats[i] = string(format)
		}
		data["formats"] = formats
	}
	if r.Path != "" {
		data["path"] = r.Path
	}
	if len(r.Components) > 0 {
		data["components"] = stringSlice(r.Components)
	}
	if len(r.Suites) > 0 {
		data["suites"] = stringSlice(r.Suites)
	}
	if r.Priority != 0 {
		data["priority"] = r.Priority
	}
	return data
}

// PPARepository is a Launchpad personal package archive, identified by its
// "owner/name" slug. The signing key is resolved through Launchpad.
type PPARepository struct {
	Priority int
	PPA      string
}

// Name returns a filesystem-safe identifier for the PPA.
func (r PPARepository) Name() string {
	return "ppa-" + strings.ReplaceAll(r.PPA, "/", "_")
}

// SourceURL returns the Launchpad archive URL the PPA serves packages from.
func (r PPARepository) SourceURL() string {
	return fmt.Sprintf("https://ppa.launchpadcontent.net/%s/ubuntu", r.PPA)
}

func (r PPARepository) Pin() string {
	origin := strings.ReplaceAll(r.PPA, "/", "-")
	return "release o=LP-PPA-" + origin
}

func (r PPARepository) PinPriority() int { return r.Priority }

func (r PPARepository) Marshal() map[string]any {
	data := map[string]any{
		"type": "apt",
		"ppa":  r.PPA,
	}
	if r.Priority != 0 {
		data["priority"] = r.Priority
	}
	return data
}

// UCARepository is an Ubuntu Cloud Archive repository for a named cloud.
type UCARepository struct {
	Priority int
	Cloud    string
	Pocket   Pocket
}

// Name returns a filesystem-safe identifier for the cloud archive.
func (r UCARepository) Name() string {
	return "cloud-" + r.Cloud
}

func (r UCARepository) Pin() string {
	parsed, err := url.Parse(UCAArchiveURL)
	if err != nil {
		return fmt.Sprintf("origin %q", UCAArchiveURL)
	}
	return fmt.Sprintf("origin %q", parsed.Host)
}

func (r UCARepository) PinPriority() int { return r.Priority }

func (r UCARepository) Marshal() map[string]any {
	pocket := r.Pocket
	if pocket == "" {
		pocket = DefaultPocket
	}
	data := map[string]any{
		"type":   "apt",
		"cloud":  r.Cloud,
		"pocket": string(pocket),
	}
	if r.Priority != 0 {
		data["priority"] = r.Priority
	}
	return data
}

func stringSlice(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}
