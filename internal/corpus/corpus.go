// Package corpus loads the candidate lines offered for typing.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the corpus file looked up relative to the working directory.
const DefaultPath = "text.txt"

// ErrEmpty is returned when a corpus file has no non-blank line.
var ErrEmpty = errors.New("corpus is empty")

// Corpus is an immutable list of candidate lines.
type Corpus struct {
	lines []string
	err   error
}

// LoadLines reads one trimmed, non-blank line per entry from path.
func LoadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	return lines, nil
}

// Load reads the corpus at path. It never fails: when the file cannot be
// used the corpus holds a single sentinel line and Err reports the cause.
func Load(path string) Corpus {
	lines, err := LoadLines(path)
	if err != nil {
		return Corpus{
			lines: []string{Sentinel(path)},
			err:   fmt.Errorf("failed to load corpus %s: %w", path, err),
		}
	}
	return Corpus{lines: lines}
}

// Sentinel is the line shown when the corpus at path is unusable.
func Sentinel(path string) string {
	name := filepath.Base(path)
	if path == "" {
		name = DefaultPath
	}
	return fmt.Sprintf("Error: Could not find '%s'. Please create the file with sample texts.", name)
}

// Lines returns a copy of the candidate lines.
func (c Corpus) Lines() []string {
	return append([]string(nil), c.lines...)
}

// Len returns the number of candidate lines.
func (c Corpus) Len() int {
	return len(c.lines)
}

// Fallback reports whether the corpus degraded to the sentinel.
func (c Corpus) Fallback() bool {
	return c.err != nil
}

// Err returns the load failure, if any.
func (c Corpus) Err() error {
	return c.err
}
