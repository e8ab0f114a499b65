// Package runner launches administrative commands in the background and
// publishes their decoded output to the event bus.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/tonhe/opsdeck/internal/engine"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is used when no command encoding is configured.
const DefaultEncoding = "UTF-8"

// ErrUnknownEncoding is returned for an encoding name the IANA index does
// not know.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Runner starts commands asynchronously. Output never flows back to the
// caller directly; it arrives later as an engine.LogEvent.
type Runner struct {
	bus    *engine.Bus
	enc    encoding.Encoding
	logger *slog.Logger
}

// New creates a Runner decoding output with the named IANA encoding. An
// empty name selects DefaultEncoding.
func New(bus *engine.Bus, encodingName string, logger *slog.Logger) (*Runner, error) {
	enc, err := Lookup(encodingName)
	if err != nil {
		return nil, err
	}
	return &Runner{bus: bus, enc: enc, logger: logger}, nil
}

// Lookup resolves an IANA encoding name. Names the index knows but has no
// implementation for resolve to a pass-through encoding.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	if enc == nil {
		return encoding.Nop, nil
	}
	return enc, nil
}

// Start launches exe with args and returns the run id immediately.
func (r *Runner) Start(name, exe string, args []string) string {
	id := uuid.NewString()[:8]
	r.logger.Info("command started", "run", id, "name", name, "exe", exe, "args", args)
	go func() {
		text := r.run(exe, args)
		r.logger.Info("command finished", "run", id, "name", name, "bytes", len(text))
		if text != "" {
			r.bus.Send(engine.LogEvent{Text: text})
		}
	}()
	return id
}

func (r *Runner) run(exe string, args []string) string {
	cmd := exec.Command(exe, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Sprintf("Failed to run: %v", err)
		}
	}
	return FormatOutput(r.decode(stdout.Bytes()), r.decode(stderr.Bytes()))
}

func (r *Runner) decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := r.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// FormatOutput joins decoded stdout and stderr the way the Logs buffer shows
// them.
func FormatOutput(stdout, stderr string) string {
	var sb strings.Builder
	sb.WriteString(stdout)
	if stderr != "" {
		sb.WriteString("\nERROR:\n")
		sb.WriteString(stderr)
	}
	return strings.TrimSpace(sb.String())
}

// Banner is the line inserted into the Logs buffer when a command starts.
func Banner(name, input string) string {
	if input != "" {
		return fmt.Sprintf("\n--- Executing (Async): %s (%s) ---\n", name, input)
	}
	return fmt.Sprintf("\n--- Executing (Async): %s ---\n", name)
}
