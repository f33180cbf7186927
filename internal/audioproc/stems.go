// SPDX-License-Identifier: MIT
package audioproc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/worshipwaves/WDweb-sub000/internal/log"
)

var stemLog = log.Component("Stems")

// ErrSeparator wraps external separation-tool failures so callers can
// distinguish them from decode and validation errors.
var ErrSeparator = errors.New("stem separation failed")

// CommandSeparator runs an external stem-separation tool (demucs-style
// CLI) and returns the path of the isolated stem. The external process
// owns its own timeout budget; there are no retries and failures
// propagate to the caller unmodified.
type CommandSeparator struct {
	// Binary is the separation executable, e.g. "demucs".
	Binary string
	// OutputDir receives the separated stems. Empty means the tool's
	// working directory default.
	OutputDir string
	// Timeout bounds a single separation run.
	Timeout time.Duration
}

var _ StemSeparator = (*CommandSeparator)(nil)

// NewCommandSeparator builds a separator for the given executable.
func NewCommandSeparator(binary, outputDir string, timeout time.Duration) *CommandSeparator {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &CommandSeparator{Binary: binary, OutputDir: outputDir, Timeout: timeout}
}

// Separate invokes the external tool for one stem of one file.
func (c *CommandSeparator) Separate(ctx context.Context, path, stem string) (string, error) {
	if c.Binary == "" {
		return "", fmt.Errorf("%w: no separator binary configured", ErrSeparator)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	args := []string{"--two-stems", stem}
	if c.OutputDir != "" {
		args = append(args, "-o", c.OutputDir)
	}
	args = append(args, path)

	stemLog.Infof("separating '%s' stem from %s", stem, filepath.Base(path))
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %v (%s)", ErrSeparator, err, firstLine(out))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(c.OutputDir, base, stem+".wav"), nil
}

// firstLine trims tool output to a single line for error context.
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 160 {
		s = s[:160]
	}
	return s
}
