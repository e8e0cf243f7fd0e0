package fixturecheck

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

const (
	ignoreBackendDirective = "IGNORE_BACKEND:"
	anyBackend             = "ANY"

	// Directives must appear near the top of a fixture.
	directiveScanLines = 50
)

// ignoredBackends reads the IGNORE_BACKEND directive from the leading lines
// of the file at path. The comment prefix in front of the directive is not
// interpreted.
func ignoredBackends(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var backends []string
	r := bufio.NewReader(f)
	for n := 0; n < directiveScanLines; n++ {
		// Lines may be arbitrarily long.
		line, err := r.ReadString('\n')
		if i := strings.Index(line, ignoreBackendDirective); i >= 0 {
			for _, b := range strings.Split(line[i+len(ignoreBackendDirective):], ",") {
				if b = strings.TrimSpace(b); b != "" {
					backends = append(backends, b)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return backends, nil
}

// mutedFor reports whether a fixture listing ignored is muted on backend.
func mutedFor(backend string, ignored []string) bool {
	for _, b := range ignored {
		if strings.EqualFold(b, backend) || strings.EqualFold(b, anyBackend) {
			return true
		}
	}
	return false
}
