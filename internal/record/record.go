package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrCorrupt is returned by Read when the record file exists but does not
// contain a usable PID. Callers treat a corrupt record like a stale one.
var ErrCorrupt = errors.New("corrupt pid file")

// Record is the persisted identity of the managed process: the PID and,
// when known, the process start time (Unix seconds) used to detect PID reuse.
type Record struct {
	PID       int
	StartUnix int64
}

type meta struct {
	StartUnix int64 `json:"start_unix"`
}

// Read loads the record at path. The first line is the decimal PID; an
// optional second line carries JSON meta. Missing files propagate the
// underlying fs.ErrNotExist so callers can distinguish "no record" from
// "corrupt record".
func Read(path string) (Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	pidLine, rest, _ := strings.Cut(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil || pid <= 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrCorrupt, path)
	}
	rec := Record{PID: pid}
	rest = strings.TrimSpace(rest)
	if rest != "" {
		var m meta
		// Ignore unparsable meta; the PID alone is still a valid legacy record.
		if err := json.Unmarshal([]byte(rest), &m); err == nil {
			rec.StartUnix = m.StartUnix
		}
	}
	return rec, nil
}

// Write replaces the record at path wholesale. The record is only ever
// written after a spawn has been confirmed; see supervisor.Start.
func Write(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(rec.PID))
	sb.WriteByte('\n')
	if rec.StartUnix > 0 {
		mb, err := json.Marshal(meta{StartUnix: rec.StartUnix})
		if err == nil {
			sb.Write(mb)
			sb.WriteByte('\n')
		}
	}
	return os.WriteFile(path, []byte(sb.String()), 0o600)
}

// Remove deletes the record. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
