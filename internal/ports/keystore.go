package ports

import (
	"context"

	"apt-archives/internal/types"
)

// KeyToolResult carries the captured output of one key-management tool
// invocation.
type KeyToolResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// KeyToolPort runs the external key-management tool. keyring selects the
// binary keyring file the invocation operates on; empty means none.
type KeyToolPort interface {
	Run(ctx context.Context, keyring string, stdin []byte, args ...string) (KeyToolResult, error)
}

// KeyStorePort installs and queries repository signing keys in a keyring
// directory.
type KeyStorePort interface {
	IsKeyInstalled(ctx context.Context, keyID string) bool
	InstallKey(ctx context.Context, key string) error
	InstallKeyFromKeyserver(ctx context.Context, keyID string, keyServer string) error
	InstallRepositoryKey(ctx context.Context, repository types.Repository) (bool, error)
}
