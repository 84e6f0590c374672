package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/ports"
	"apt-archives/internal/shared"
	"apt-archives/internal/types"
)

// DefaultKeyringsDir is where Debian recommends third-party keyrings live.
const DefaultKeyringsDir = "/etc/apt/keyrings"

// keyringPrefix tags keyring files installed by this tool. Local key assets
// carry no prefix.
const keyringPrefix = "archives-"

// KeyStoreAdapter installs and queries repository signing keys. Keys are
// materialized as binary keyring files named by the last 8 characters of
// their fingerprint under KeyringsDir. Install is idempotent per
// fingerprint; an already-present key is a no-op.
type KeyStoreAdapter struct {
	KeyringsDir  string
	KeyAssetsDir string
	Tool         ports.KeyToolPort
	PPA          ports.PPAResolverPort
}

func NewKeyStoreAdapter(keyringsDir string, keyAssetsDir string, tool ports.KeyToolPort, ppa ports.PPAResolverPort) KeyStoreAdapter {
	if keyringsDir == "" {
		keyringsDir = DefaultKeyringsDir
	}
	return KeyStoreAdapter{
		KeyringsDir:  keyringsDir,
		KeyAssetsDir: keyAssetsDir,
		Tool:         tool,
		PPA:          ppa,
	}
}

// KeyFileName derives the deterministic file name for a key: the last 8
// characters of the fingerprint, uppercased, with an .asc suffix for
// ASCII-armored assets and .gpg for binary keyrings.
func KeyFileName(keyID string, prefix string, ascii bool) string {
	base := keyID
	if len(base) > 8 {
		base = base[len(base)-8:]
	}
	suffix := ".gpg"
	if ascii {
		suffix = ".asc"
	}
	return prefix + strings.ToUpper(base) + suffix
}

// KeyringPath returns the keyring file a key with keyID is installed to
// under dir. An empty dir falls back to DefaultKeyringsDir.
func KeyringPath(dir string, keyID string) string {
	if dir == "" {
		dir = DefaultKeyringsDir
	}
	return filepath.Join(dir, KeyFileName(keyID, keyringPrefix, false))
}

func (s KeyStoreAdapter) keyringPath(keyID string) string {
	return KeyringPath(s.KeyringsDir, keyID)
}

// FindAssetWithKeyID looks for a local key asset named by the last 8
// characters of the key id, in upper case.
func (s KeyStoreAdapter) FindAssetWithKeyID(keyID string) (string, bool) {
	if s.KeyAssetsDir == "" {
		return "", false
	}
	path := filepath.Join(s.KeyAssetsDir, KeyFileName(keyID, "", true))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// IsKeyInstalled reports whether the keyring file for keyID exists and
// contains the key. A missing keyring file answers false without invoking
// the tool: querying gpg against a missing keyring would create an empty
// keyring file as a side effect.
func (s KeyStoreAdapter) IsKeyInstalled(ctx context.Context, keyID string) bool {
	keyringFile := s.keyringPath(keyID)
	info, err := os.Stat(keyringFile)
	if err != nil || info.IsDir() {
		log.Debug().Str("keyring", keyringFile).Msg("keyring file not found")
		return false
	}
	result, err := s.Tool.Run(ctx, keyringFile, nil, "--list-keys", keyID)
	if err != nil {
		log.Warn().Err(err).Str("key_id", keyID).Msg("failed to list keys")
		return false
	}
	if result.ExitCode == 0 {
		return true
	}
	if result.ExitCode != gpgExitKeyNotFound {
		log.Warn().
			Int("exit_code", result.ExitCode).
			Str("output", strings.TrimSpace(string(result.Stderr))).
			Msg("unexpected gpg failure")
	}
	log.Warn().Str("keyring", keyringFile).Msg("keyring file does not contain the expected key")
	return false
}

// KeyFingerprints lists the fingerprints found in the given key material.
// The material is staged in a temporary file that is removed on all exit
// paths.
func (s KeyStoreAdapter) KeyFingerprints(ctx context.Context, key string) ([]string, error) {
	tmp, err := os.CreateTemp("", "apt-archives-key-*")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stage key material").
			WithCause(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(key); err != nil {
		tmp.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stage key material").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stage key material").
			WithCause(err)
	}
	result, err := s.Tool.Run(ctx, "", nil, "--show-keys", tmp.Name())
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, keyInstallError(result, "failed to show keys", "key", key)
	}
	return ParseFingerprints(result.Stdout), nil
}

// InstallKey imports key material into its deterministic keyring path. The
// material must contain exactly one key; zero or several fingerprints is a
// configuration error. The keyring file is made world-readable so that apt,
// running under a different uid, can read it.
func (s KeyStoreAdapter) InstallKey(ctx context.Context, key string) error {
	fingerprints, err := s.KeyFingerprints(ctx, key)
	if err != nil {
		return err
	}
	if len(fingerprints) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("invalid GPG key: %s", key))
	}
	if len(fingerprints) != 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("key must be a single key, not multiple: %s", key))
	}
	if err := s.ensureKeyringsDir(); err != nil {
		return err
	}
	keyringFile := s.keyringPath(fingerprints[0])
	result, err := s.Tool.Run(ctx, keyringFile, []byte(key), "--import", "-")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return keyInstallError(result, "failed to install key", "key", key)
	}
	if err := os.Chmod(keyringFile, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set keyring permissions").
			WithCause(err)
	}
	log.Debug().Str("keyring", keyringFile).Msg("installed apt repository key")
	return nil
}

// InstallKeyFromKeyserver fetches keyID from a keyserver into its
// deterministic keyring path. An empty keyServer falls back to the
// well-known public keyserver. gpg needs a homedir for its ephemeral fetch
// state; a permission-restricted temporary directory is used and removed on
// all exit paths.
func (s KeyStoreAdapter) InstallKeyFromKeyserver(ctx context.Context, keyID string, keyServer string) error {
	if keyServer == "" {
		keyServer = types.DefaultKeyServer
	}
	if err := s.ensureKeyringsDir(); err != nil {
		return err
	}
	keyringFile := s.keyringPath(keyID)
	homedir, err := os.MkdirTemp("", "apt-archives-gnupg-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create gpg homedir").
			WithCause(err)
	}
	defer os.RemoveAll(homedir)
	if err := os.Chmod(homedir, 0700); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to restrict gpg homedir").
			WithCause(err)
	}
	result, err := s.Tool.Run(ctx, keyringFile, nil,
		"--homedir", homedir, "--keyserver", keyServer, "--recv-keys", keyID)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return keyInstallError(result, "failed to receive key from keyserver",
			"key_id", keyID, "key_server", keyServer)
	}
	if err := os.Chmod(keyringFile, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set keyring permissions").
			WithCause(err)
	}
	return nil
}

// InstallRepositoryKey installs the signing key a repository needs, if it
// is not installed already. PPA repositories resolve their key id through
// Launchpad, UCA repositories use the fixed cloud-archive key, and plain
// apt repositories carry their own key id and optional keyserver. A local
// key asset takes precedence over a keyserver fetch. Returns true when an
// install was performed.
func (s KeyStoreAdapter) InstallRepositoryKey(ctx context.Context, repository types.Repository) (bool, error) {
	var keyID, keyServer string
	switch repo := repository.(type) {
	case types.PPARepository:
		resolved, err := s.PPA.SigningKeyID(ctx, repo.PPA)
		if err != nil {
			return false, err
		}
		keyID = resolved
	case types.UCARepository:
		keyID = types.UCAKeyID
	case types.AptRepository:
		keyID = repo.KeyID
		keyServer = repo.KeyServer
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unhandled repository variant %T", repository))
	}

	if s.IsKeyInstalled(ctx, keyID) {
		return false, nil
	}

	if assetPath, ok := s.FindAssetWithKeyID(keyID); ok {
		material, err := os.ReadFile(assetPath)
		if err != nil {
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read key asset").
				WithCause(err)
		}
		if err := s.InstallKey(ctx, string(material)); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := s.InstallKeyFromKeyserver(ctx, keyID, keyServer); err != nil {
		return false, err
	}
	return true, nil
}

func (s KeyStoreAdapter) ensureKeyringsDir() error {
	if err := os.MkdirAll(s.KeyringsDir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create keyrings directory").
			WithCause(err)
	}
	return nil
}

// keyInstallError wraps a failed tool invocation with the raw output and
// the identifying context pairs.
func keyInstallError(result ports.KeyToolResult, message string, pairs ...string) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message + contextSuffix(pairs))
	output := strings.TrimSpace(string(result.Stderr))
	if output == "" {
		output = strings.TrimSpace(string(result.Stdout))
	}
	return builder.WithCause(shared.ToolOutputError(output, result.ExitCode))
}

func contextSuffix(pairs []string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s=%s", pairs[i], pairs[i+1]))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}

var _ ports.KeyStorePort = KeyStoreAdapter{}
