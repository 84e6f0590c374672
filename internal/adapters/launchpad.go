package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/core"
	"apt-archives/internal/ports"
	"apt-archives/internal/shared"
)

const defaultLaunchpadEndpoint = "https://api.launchpad.net/devel"
const defaultLaunchpadTimeout = 30 * time.Second

// LaunchpadResolver resolves a PPA's signing-key fingerprint through the
// anonymous Launchpad REST API.
type LaunchpadResolver struct {
	Endpoint string
	Timeout  time.Duration
}

func NewLaunchpadResolver() LaunchpadResolver {
	return LaunchpadResolver{
		Endpoint: defaultLaunchpadEndpoint,
		Timeout:  defaultLaunchpadTimeout,
	}
}

type launchpadArchive struct {
	SigningKeyFingerprint string `json:"signing_key_fingerprint"`
}

func (r LaunchpadResolver) SigningKeyID(ctx context.Context, ppa string) (string, error) {
	owner, name, err := core.SplitPPA(ppa)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/~%s/+archive/ubuntu/%s", r.Endpoint, owner, name)
	log.Debug().Str("ppa", ppa).Str("url", url).Msg("resolving PPA signing key")

	client := &http.Client{Timeout: r.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install PPA '%s'", ppa)).
			WithCause(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': Launchpad lookup failed", ppa)).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': no such archive", ppa))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': Launchpad lookup failed", ppa)).
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': Launchpad lookup failed", ppa)).
			WithCause(err)
	}
	var archive launchpadArchive
	if err := json.Unmarshal(body, &archive); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': malformed Launchpad response", ppa)).
			WithCause(err)
	}
	if archive.SigningKeyFingerprint == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to install PPA '%s': archive has no signing key", ppa))
	}
	return archive.SigningKeyFingerprint, nil
}

var _ ports.PPAResolverPort = LaunchpadResolver{}
