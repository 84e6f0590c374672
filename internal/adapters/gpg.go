package adapters

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/ports"
)

// Exit code gpg returns from --list-keys when the key is not in the
// keyring. A normal negative result, not a failure.
const gpgExitKeyNotFound = 2

// gpgPrefix is prepended to every invocation so gpg never touches the
// user's default keyring and never prompts.
var gpgPrefix = []string{"--batch", "--no-default-keyring"}

// GPGAdapter invokes the gpg binary with captured output. Textual output
// parsing stays stable because the environment is pinned to LANG=C.UTF-8.
type GPGAdapter struct {
	Binary string
}

func NewGPGAdapter() GPGAdapter {
	return GPGAdapter{Binary: "gpg"}
}

func (a GPGAdapter) Run(ctx context.Context, keyring string, stdin []byte, args ...string) (ports.KeyToolResult, error) {
	command := append([]string{}, gpgPrefix...)
	if keyring != "" {
		command = append(command, "--keyring", "gnupg-ring:"+keyring)
	}
	command = append(command, args...)
	log.Debug().Strs("args", command).Msg("executing gpg")

	cmd := exec.CommandContext(ctx, a.Binary, command...)
	cmd.Env = []string{"LANG=C.UTF-8"}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.KeyToolResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to execute gpg").
			WithCause(err)
	}
	return result, nil
}

// ParseFingerprints extracts every fingerprint from gpg --show-keys output:
// the line immediately following a line starting with the public-key
// marker. This is the only place that depends on gpg's textual layout.
func ParseFingerprints(output []byte) []string {
	lines := strings.Split(string(output), "\n")
	var fingerprints []string
	for i, line := range lines {
		if strings.HasPrefix(line, "pub   ") && i+1 < len(lines) {
			fingerprints = append(fingerprints, strings.TrimSpace(lines[i+1]))
		}
	}
	return fingerprints
}

var _ ports.KeyToolPort = GPGAdapter{}
