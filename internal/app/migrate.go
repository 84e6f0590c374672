package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-archives/internal/adapters"
)

// Migrate switches the default sources under a filesystem root to the
// old-releases archive when their suites have been archived.
func (s Service) Migrate(ctx context.Context, req MigrateRequest) (MigrateResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return MigrateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("filesystem root is required")
	}
	probe := adapters.NewOldReleasesAdapter(req.OldReleasesURL)
	changed, err := probe.MigrateToOldReleases(ctx, root, req.Deb822Name)
	if err != nil {
		return MigrateResult{}, err
	}
	return MigrateResult{Changed: changed}, nil
}

// CheckCloud verifies that a cloud archive release exists for the given
// Ubuntu codename and pocket.
func (s Service) CheckCloud(ctx context.Context, req CheckCloudRequest) error {
	if strings.TrimSpace(req.Codename) == "" || strings.TrimSpace(req.Cloud) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("codename and cloud are required")
	}
	return s.CloudArchive.CheckReleaseCompatibility(ctx, req.Codename, req.Cloud, req.Pocket)
}
