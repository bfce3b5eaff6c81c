// Package fishcache implements spec.md §4.6's on-process-start/on-exit
// plain-text catalog of format-name pairs, letting a long-running host
// application warm the in-memory fish cache (internal/exec.Cache) from a
// prior run's observed traffic instead of rebuilding every plan cold.
// The on-disk *file format* itself (spec.md §1 Non-goals) is treated as
// an opaque detail this package owns entirely; nothing outside it parses
// the file.
package fishcache

import (
	"bufio"
	"os"
	"strings"

	"go.uber.org/zap"
)

// InhibitEnvVar disables load/save entirely, mirroring babl's
// BABL_INHIBIT_CACHE (original_source/babl/babl-cache.c).
const InhibitEnvVar = "BABL_INHIBIT_CACHE"

// Entry is one catalog line: the source and destination format names
// seen by a prior run, in display-name form (format.Format.Name).
type Entry struct {
	From, To string
}

// Load reads path's catalog of From/To format-name pairs. A missing file
// is not an error (returns nil, nil); a malformed line is logged and
// skipped rather than aborting the whole load, matching babl's tolerant
// startup behavior, since a stale or corrupt cache must never prevent
// the program from running.
func Load(path string, log *zap.Logger) ([]Entry, error) {
	if os.Getenv(InhibitEnvVar) != "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		from, to, ok := strings.Cut(line, "\t")
		if !ok {
			if log != nil {
				log.Warn("fishcache: skipping malformed line",
					zap.String("path", path), zap.Int("line", lineNo))
			}
			continue
		}
		entries = append(entries, Entry{From: from, To: to})
	}
	if err := sc.Err(); err != nil {
		if log != nil {
			log.Warn("fishcache: read error, continuing without remaining entries",
				zap.String("path", path), zap.Error(err))
		}
	}
	return entries, nil
}

// Save overwrites path with entries, one From\tTo pair per line.
func Save(path string, entries []Entry) error {
	if os.Getenv(InhibitEnvVar) != "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := w.WriteString(e.From); err != nil {
			return err
		}
		if _, err := w.WriteString("\t"); err != nil {
			return err
		}
		if _, err := w.WriteString(e.To); err != nil {
			return err
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
