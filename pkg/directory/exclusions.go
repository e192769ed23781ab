package directory

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LoadExclusions reads the exclusion list file: one provider identifier per
// line, blank lines ignored. A missing file is not an error; it yields an
// empty set.
func LoadExclusions(path string) (map[string]struct{}, error) {
	excluded := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("no exclusion file found", "path", path)
			return excluded, nil
		}
		return nil, fmt.Errorf("opening exclusion file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			excluded[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading exclusion file %s: %w", path, err)
	}

	slog.Info("loaded excluded providers", "path", path, "count", len(excluded))
	return excluded, nil
}
