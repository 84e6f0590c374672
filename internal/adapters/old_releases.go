package adapters

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/ports"
)

// DefaultOldReleasesURL is Ubuntu's archive for end-of-life releases.
const DefaultOldReleasesURL = "http://old-releases.ubuntu.com/ubuntu"

const defaultOldReleasesRetries = 3
const defaultOldReleasesTimeout = 30 * time.Second
const defaultOldReleasesBackoff = 5 * time.Second

// OldReleasesAdapter checks whether distribution suites have been moved to
// the old-releases archive, and rewrites default source files to point at
// it. Probe results are cached per suite for the adapter's lifetime.
type OldReleasesAdapter struct {
	ArchiveURL string
	Retries    int
	Timeout    time.Duration

	// backoff is split evenly across the remaining retries.
	backoff time.Duration
	cache   map[string]bool
}

func NewOldReleasesAdapter(archiveURL string) *OldReleasesAdapter {
	if archiveURL == "" {
		archiveURL = DefaultOldReleasesURL
	}
	return &OldReleasesAdapter{
		ArchiveURL: archiveURL,
		Retries:    defaultOldReleasesRetries,
		Timeout:    defaultOldReleasesTimeout,
		backoff:    defaultOldReleasesBackoff,
		cache:      map[string]bool{},
	}
}

// IsOnOldReleases probes <archive>/dists/<suite>/Release. A 4xx status
// means the suite is not archived; server errors are retried with a short
// backoff before giving up.
func (a *OldReleasesAdapter) IsOnOldReleases(ctx context.Context, suite string) (bool, error) {
	if cached, ok := a.cache[suite]; ok {
		return cached, nil
	}
	url := fmt.Sprintf("%s/dists/%s/Release", strings.TrimRight(a.ArchiveURL, "/"), suite)
	if !strings.HasPrefix(url, "http") {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("old-releases archive must be an HTTP URL")
	}
	client := &http.Client{Timeout: a.Timeout}
	retries := a.Retries
	for {
		found, retryable, err := a.probe(ctx, client, url)
		if err == nil {
			a.cache[suite] = found
			return found, nil
		}
		if !retryable || retries <= 0 {
			return false, err
		}
		log.Debug().Str("suite", suite).Int("retries_left", retries).Msg("retrying old-releases probe")
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(a.backoff / time.Duration(retries)):
		}
		retries--
	}
}

func (a *OldReleasesAdapter) probe(ctx context.Context, client *http.Client, url string) (found bool, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to probe old-releases archive").
			WithCause(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to probe old-releases archive").
			WithCause(err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return false, false, nil
	case resp.StatusCode >= 500:
		return false, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("old-releases archive returned status %d", resp.StatusCode))
	default:
		return true, false, nil
	}
}

// MigrateToOldReleases rewrites the default source files under root to use
// the old-releases archive for every suite found there. The one-line
// sources.list is consulted first; when empty or missing, the deb822
// ubuntu.sources file is used instead. The backing file is rewritten in its
// original format. Returns true when anything changed.
func (a *OldReleasesAdapter) MigrateToOldReleases(ctx context.Context, root string, deb822Name string) (bool, error) {
	if deb822Name == "" {
		deb822Name = "ubuntu.sources"
	}
	oneLine := NewSourcesListAdapter()
	deb822 := NewDeb822Adapter()

	sourcesFile := filepath.Join(root, "etc/apt/sources.list")
	usesDeb822 := false
	sources, err := oneLine.LoadSourcesList(sourcesFile)
	if err != nil || len(sources) == 0 {
		sourcesFile = filepath.Join(root, "etc/apt/sources.list.d", deb822Name)
		sources, err = deb822.LoadSources(sourcesFile)
		if err != nil {
			return false, err
		}
		usesDeb822 = true
	}

	changed := false
	for i := range sources {
		for _, suite := range sources[i].Suites {
			archived, err := a.IsOnOldReleases(ctx, suite)
			if err != nil {
				return false, err
			}
			if archived {
				sources[i].URIs = []string{a.ArchiveURL}
				changed = true
			}
		}
	}
	if !changed {
		return false, nil
	}

	if usesDeb822 {
		if err := deb822.WriteSources(sourcesFile, sources); err != nil {
			return false, err
		}
	} else {
		if err := oneLine.WriteSourcesList(sourcesFile, sources); err != nil {
			return false, err
		}
	}
	log.Info().Str("file", sourcesFile).Msg("switched default sources to old-releases archive")
	return true, nil
}

var _ ports.ReleaseProbePort = (*OldReleasesAdapter)(nil)
