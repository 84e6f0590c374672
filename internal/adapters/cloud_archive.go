package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

const defaultCloudArchiveTimeout = 30 * time.Second

// CloudArchiveAdapter probes the Ubuntu Cloud Archive for the existence of
// a cloud release under a given Ubuntu codename and pocket.
type CloudArchiveAdapter struct {
	ArchiveURL string
	Timeout    time.Duration
}

func NewCloudArchiveAdapter() CloudArchiveAdapter {
	return CloudArchiveAdapter{
		ArchiveURL: types.UCAArchiveURL,
		Timeout:    defaultCloudArchiveTimeout,
	}
}

func (a CloudArchiveAdapter) CheckReleaseCompatibility(ctx context.Context, codename string, cloud string, pocket string) error {
	if pocket == "" {
		pocket = string(types.DefaultPocket)
	}
	url := fmt.Sprintf("%s/dists/%s-%s/%s/", a.ArchiveURL, codename, pocket, cloud)
	client := &http.Client{Timeout: a.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install cloud archive '%s/%s'", cloud, pocket)).
			WithCause(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install cloud archive '%s/%s': fetching release failed", cloud, pocket)).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to install cloud archive '%s/%s': not a valid release for '%s'", cloud, pocket, codename))
	}
	if resp.StatusCode >= 400 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install cloud archive '%s/%s': unexpected status code %d while fetching release", cloud, pocket, resp.StatusCode))
	}
	return nil
}

var _ ports.CloudArchivePort = CloudArchiveAdapter{}
