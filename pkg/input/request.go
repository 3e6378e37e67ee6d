// pkg/input/request.go
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// RequestSource consolidates the ways a captured request string can
// reach the tool: inline flag, file, or piped stdin.
type RequestSource struct {
	Inline string // From -request
	File   string // From -request-file
	Stdin  bool   // Pipe input detection
}

// Get returns the request string from the highest-priority source:
// inline beats file beats stdin.
func (rs *RequestSource) Get() (string, error) {
	if strings.TrimSpace(rs.Inline) != "" {
		return rs.Inline, nil
	}

	if rs.File != "" {
		data, err := os.ReadFile(rs.File)
		if err != nil {
			return "", fmt.Errorf("read request file: %w", err)
		}
		return string(data), nil
	}

	if rs.Stdin {
		data, err := readStdin()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(data) != "" {
			return data, nil
		}
	}

	return "", fmt.Errorf("no request specified")
}

func readStdin() (string, error) {
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		// Not a pipe, return empty
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
