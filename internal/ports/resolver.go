package ports

import "context"

// PPAResolverPort resolves a Launchpad PPA slug ("owner/name") to the
// fingerprint of its signing key.
type PPAResolverPort interface {
	SigningKeyID(ctx context.Context, ppa string) (string, error)
}

// ReleaseProbePort answers whether a distribution suite has been moved to
// the old-releases archive.
type ReleaseProbePort interface {
	IsOnOldReleases(ctx context.Context, suite string) (bool, error)
}

// CloudArchivePort checks that a cloud archive release exists for a given
// Ubuntu codename and pocket.
type CloudArchivePort interface {
	CheckReleaseCompatibility(ctx context.Context, codename string, cloud string, pocket string) error
}
