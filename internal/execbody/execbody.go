// Package execbody provides a fixturecheck test body that runs an external
// command against each fixture.
package execbody

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/goatx/fixturecheck"
)

// Placeholder is replaced by the fixture path in the command arguments.
const Placeholder = "{}"

// maxOutput bounds how much command output a failure diagnostic carries.
const maxOutput = 4 << 10

// Body is an external command used as a test body.
type Body struct {
	Args []string
	Dir  string
	Env  []string
}

// New returns a body running argv. argv[0] is the program; every "{}" in
// the arguments is replaced by the fixture path, which is appended when no
// placeholder is present.
func New(argv ...string) (*Body, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("exec body needs a command")
	}
	return &Body{Args: argv}, nil
}

// Command returns the argument vector for a fixture path.
func (b *Body) Command(path string) []string {
	args := make([]string, 0, len(b.Args)+1)
	replaced := false
	for _, a := range b.Args {
		if strings.Contains(a, Placeholder) {
			a = strings.ReplaceAll(a, Placeholder, path)
			replaced = true
		}
		args = append(args, a)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

// Run executes the command for path. A non-zero exit is a test failure
// carrying the command's output; failing to start the command aborts.
func (b *Body) Run(ctx context.Context, path string) error {
	argv := b.Command(path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = b.Dir
	if b.Env != nil {
		cmd.Env = b.Env
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return fmt.Errorf("%s: %v\n%s", argv[0], exitErr, tail(out.String()))
	}
	return fixturecheck.Abort(fmt.Errorf("%s: %w", argv[0], err))
}

// TestBody adapts b to the fixturecheck body signature.
func (b *Body) TestBody() fixturecheck.TestBody {
	return b.Run
}

func tail(s string) string {
	s = strings.TrimRight(s, "\n")
	if len(s) <= maxOutput {
		return s
	}
	return "..." + s[len(s)-maxOutput:]
}
