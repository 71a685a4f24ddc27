package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sdpower/ccreport-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, root, project, name string, lines ...string) string {
	t.Helper()
	dir := filepath.Join(root, project)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func window() Query {
	return Query{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC),
	}
}

func TestLoadSessionsMissingRoot(t *testing.T) {
	l := New()
	_, err := l.LoadSessions(context.Background(), filepath.Join(t.TempDir(), "nope"), window())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrRootNotFound))
}

func TestLoadSessionsGroupsByProjectAndFile(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-Users-alice-shop", "s1.jsonl",
		`{"type":"summary","summary":"Fix login bug"}`,
		`{"type":"user","timestamp":"2024-01-05T10:00:00Z","message":{"content":"hi"}}`,
	)
	writeSession(t, root, "-Users-alice-shop", "s2.jsonl",
		`{"type":"user","timestamp":"2024-01-06T10:00:00Z","message":{"content":"again"}}`,
	)
	writeSession(t, root, "-Users-alice-blog", "b1.jsonl",
		`{"type":"user","timestamp":"2024-01-02T08:00:00Z","message":{"content":"post"}}`,
	)
	writeSession(t, root, "-Users-alice-blog", "notes.txt", `{"type":"user"}`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.jsonl"), []byte(`{"type":"user"}`), 0o644))

	l := New()
	l.SetProjectPrefix("-Users-alice-")
	sessions, err := l.LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, "blog", sessions[0].Project)
	assert.Equal(t, "b1", sessions[0].SessionID)
	assert.Equal(t, "shop", sessions[1].Project)
	assert.Equal(t, "s1", sessions[1].SessionID)
	assert.Equal(t, "s2", sessions[2].SessionID)

	require.Len(t, sessions[1].Entries, 2)
	assert.Equal(t, types.EntrySummary, sessions[1].Entries[0].Type)
	assert.Equal(t, types.EntryUser, sessions[1].Entries[1].Type)
}

func TestLoadSessionsTimeWindow(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "proj", "s.jsonl",
		`{"type":"user","timestamp":"2023-12-31T23:59:59Z","message":{"content":"before"}}`,
		`{"type":"user","timestamp":"2024-01-01T00:00:00Z","message":{"content":"at start"}}`,
		`{"type":"other-thing"}`,
		`{"type":"user","timestamp":"2024-01-07T23:59:59Z","message":{"content":"at end"}}`,
		`{"type":"user","timestamp":"2024-01-08T00:00:00Z","message":{"content":"after"}}`,
		`{"type":"user","timestamp":"garbage","message":{"content":"bad ts"}}`,
	)

	sessions, err := New().LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	var texts []string
	for _, e := range sessions[0].Entries {
		texts = append(texts, e.Message.PlainText())
	}
	assert.Equal(t, []string{"at start", "", "at end", "bad ts"}, texts)
}

func TestLoadSessionsDropsEmptySessions(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "proj", "old.jsonl",
		`{"type":"user","timestamp":"2020-01-01T00:00:00Z","message":{"content":"old"}}`,
	)
	writeSession(t, root, "proj", "broken.jsonl", `{{{`, `not json`)
	writeSession(t, root, "proj", "empty.jsonl")

	sessions, err := New().LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestLoadSessionsProjectFilter(t *testing.T) {
	root := t.TempDir()
	line := `{"type":"user","timestamp":"2024-01-03T00:00:00Z","message":{"content":"x"}}`
	writeSession(t, root, "-Users-bob-WebShop", "a.jsonl", line)
	writeSession(t, root, "-Users-bob-cli", "b.jsonl", line)

	l := New()
	l.SetProjectPrefix("-Users-bob-")
	q := window()
	q.Project = "shop"

	sessions, err := l.LoadSessions(context.Background(), root, q)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "WebShop", sessions[0].Project)
}

func TestLoadSessionsSkipsUnreadableFiles(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	line := `{"type":"user","timestamp":"2024-01-03T00:00:00Z","message":{"content":"x"}}`
	writeSession(t, root, "proj", "ok.jsonl", line)
	locked := writeSession(t, root, "proj", "locked.jsonl", line)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o644) })

	sessions, err := New().LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ok", sessions[0].SessionID)
}

func TestLoadSessionsCorruptArchiveIsSkipped(t *testing.T) {
	root := t.TempDir()
	line := `{"type":"user","timestamp":"2024-01-03T00:00:00Z","message":{"content":"x"}}`
	writeSession(t, root, "proj", "ok.jsonl", line)
	writeSession(t, root, "proj", "bad.jsonl.gz", "definitely not gzip")

	sessions, err := New().LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ok", sessions[0].SessionID)
}

func TestLoadSessionsCompressedArchives(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	payload := []byte(`{"type":"user","timestamp":"2024-01-03T00:00:00Z","message":{"content":"zipped"}}` + "\n")

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.jsonl.zst"), zbuf.Bytes(), 0o644))

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	_, err = gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g.jsonl.gz"), gbuf.Bytes(), 0o644))

	sessions, err := New().LoadSessions(context.Background(), root, window())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "g", sessions[0].SessionID)
	assert.Equal(t, "z", sessions[1].SessionID)
	for _, s := range sessions {
		require.Len(t, s.Entries, 1)
		assert.Equal(t, "zipped", s.Entries[0].Message.PlainText())
	}
}

func TestLoadSessionsCancelled(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "proj", "a.jsonl", `{"type":"user"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().LoadSessions(ctx, root, window())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionID(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"abc.jsonl", "abc", true},
		{"abc.JSONL", "abc", true},
		{"abc.jsonl.zst", "abc", true},
		{"abc.jsonl.gz", "abc", true},
		{"abc.json", "", false},
		{".jsonl", "", false},
		{"abc.zst", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SessionID(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectName(t *testing.T) {
	l := New()
	assert.Equal(t, "-Users-alice-shop", l.ProjectName("-Users-alice-shop"))
	l.SetProjectPrefix("-Users-alice-")
	assert.Equal(t, "shop", l.ProjectName("-Users-alice-shop"))
	assert.Equal(t, "-opt-work", l.ProjectName("-opt-work"))
}
