package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sdpower/ccreport-go/internal/types"
)

// Recognized session log extensions, longest first.
const (
	extJSONL     = ".jsonl"
	extJSONLZstd = ".jsonl.zst"
	extJSONLGzip = ".jsonl.gz"
)

var logExtensions = []string{extJSONLZstd, extJSONLGzip, extJSONL}

// maxLineSize bounds a single log line. Inline image payloads make lines
// far longer than bufio's default.
const maxLineSize = 64 * 1024 * 1024

type Loader struct {
	logger *slog.Logger
	prefix string
}

func New() *Loader {
	return &Loader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// SetProjectPrefix sets the encoded deployment path stripped from project
// directory names, e.g. "-Users-alice-".
func (l *Loader) SetProjectPrefix(prefix string) {
	l.prefix = prefix
}

// Query selects sessions. Start and End are inclusive; a zero bound is open.
type Query struct {
	Start   time.Time
	End     time.Time
	Project string
}

func (q Query) inRange(ts time.Time) bool {
	if !q.Start.IsZero() && ts.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && ts.After(q.End) {
		return false
	}
	return true
}

func (q Query) matchesProject(name string) bool {
	if q.Project == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q.Project))
}

// ProjectName recovers a human project name from its directory name.
func (l *Loader) ProjectName(dirName string) string {
	if l.prefix == "" {
		return dirName
	}
	return strings.TrimPrefix(dirName, l.prefix)
}

// LoadSessions walks root/<project>/<session-file> sequentially and returns
// the sessions with at least one retained entry. A missing root is the only
// error; unreadable files are logged and skipped.
func (l *Loader) LoadSessions(ctx context.Context, root string, q Query) ([]types.Session, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrRootNotFound, root)
		}
		return nil, types.LoaderError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrRootNotFound, root)
	}

	projectDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, types.LoaderError{Path: root, Err: err}
	}

	var sessions []types.Session
	for _, dir := range projectDirs {
		if !dir.IsDir() {
			continue
		}

		project := l.ProjectName(dir.Name())
		if !q.matchesProject(project) {
			continue
		}

		projectPath := filepath.Join(root, dir.Name())
		files, err := os.ReadDir(projectPath)
		if err != nil {
			l.logger.Warn("skipping unreadable project directory", "path", projectPath, "err", err)
			continue
		}

		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if f.IsDir() {
				continue
			}
			sessionID, ok := SessionID(f.Name())
			if !ok {
				continue
			}

			path := filepath.Join(projectPath, f.Name())
			entries, err := l.loadFile(path, q)
			if err != nil {
				l.logger.Warn("skipping unreadable session file", "path", path, "err", err)
				continue
			}
			if len(entries) == 0 {
				continue
			}

			sessions = append(sessions, types.Session{
				Project:   project,
				SessionID: sessionID,
				Path:      path,
				Entries:   entries,
			})
		}
	}

	l.logger.Debug("loaded sessions", "root", root, "count", len(sessions))
	return sessions, nil
}

// SessionID strips a recognized log extension from a file name.
func SessionID(fileName string) (string, bool) {
	lower := strings.ToLower(fileName)
	for _, ext := range logExtensions {
		if strings.HasSuffix(lower, ext) && len(fileName) > len(ext) {
			return fileName[:len(fileName)-len(ext)], true
		}
	}
	return "", false
}

func (l *Loader) loadFile(path string, q Query) ([]types.LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}
	defer file.Close()

	r, closeFn, err := decompress(path, file)
	if err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}
	defer closeFn()

	var entries []types.LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	discarded := 0
	for scanner.Scan() {
		lineNum++
		entry, ok := ParseLine(scanner.Bytes())
		if !ok {
			if len(strings.TrimSpace(scanner.Text())) > 0 {
				discarded++
				if discarded == 1 {
					l.logger.Debug("discarding malformed line",
						"err", types.ParseError{Path: filepath.Base(path), Line: lineNum, Err: errMalformed})
				}
			}
			continue
		}

		// Entries without a usable timestamp are kept regardless of range.
		if entry.Timestamp != nil && !q.inRange(*entry.Timestamp) {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}

	if discarded > 0 {
		l.logger.Debug("malformed lines discarded", "path", filepath.Base(path), "count", discarded)
	}
	return entries, nil
}

var errMalformed = errors.New("not a JSON object")

func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, extJSONLZstd):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case strings.HasSuffix(lower, extJSONLGzip):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	default:
		return r, func() {}, nil
	}
}
