// Package lang loads break particle override files.
package lang

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadParticles reads one break particle per line from the provided file path.
func LoadParticles(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only particle list.
			_ = cerr
		}
	}()

	var particles []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		particles = append(particles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(particles) == 0 {
		return nil, fmt.Errorf("particle list is empty")
	}
	return particles, nil
}

// LoadOverride applies a particle override file to the profile when the file
// exists. A missing file keeps the built-in particles and is not an error.
func LoadOverride(p Profile, path string) (Profile, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("failed to stat particle list: %w", err)
	}
	entries, err := LoadParticles(path)
	if err != nil {
		return p, fmt.Errorf("failed to load particle list: %w", err)
	}
	filter := FilterForLang(p.Code)
	kept := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filter(entry) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		return p, fmt.Errorf("no usable particles in %s", path)
	}
	return p.WithParticles(kept), nil
}
