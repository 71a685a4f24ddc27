package summarizer

import (
	"strings"
	"testing"

	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSummarizerEnglish(t *testing.T) {
	s := NewContentSummarizer(i18n.English)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"image file", "look at mockup.PNG please", "image file: mockup.PNG"},
		{"image path", "check /tmp/shots/ui.webp", "image file: ui.webp"},
		{"image beats url", "compare https://example.com with logo.svg", "image file: logo.svg"},
		{"inline image", "here: data:image/png;base64,iVBOR", "image data"},
		{"base64 blob", strings.Repeat("QUJD", 300), "image data"},
		{"screenshot", "Can you analyse this ScreenShot?", "screenshot analysis"},
		{"screencapture", "see screencapture output", "screenshot analysis"},
		{"screenshot beats path", "the screenshot at /tmp/a.txt", "screenshot analysis"},
		{"file create", "please create /src/app/main.go with a server", "file creation: main.go"},
		{"file edit", "Edit /etc/nginx/nginx.conf to add gzip", "file edit: nginx.conf"},
		{"file read", "please read /tmp/app.log for errors", "file read: app.log"},
		{"file generic", "what about /var/db/data.sqlite", "file operation: data.sqlite"},
		{"file beats url", "fetch https://x.io then open /tmp/out.json", "file operation: out.json"},
		{"path must start at boundary", "see a/tmp/x.txt", "see a/tmp/x.txt"},
		{"url", "summarize https://go.dev/doc/effective_go for me", "web reference: go.dev"},
		{"url with port", "hit http://localhost:8080/health", "web reference: localhost:8080"},
		{"url beats code", "implement what https://pkg.go.dev says", "web reference: pkg.go.dev"},
		{"code create", "create a function that adds numbers", "code implementation request"},
		{"code error", "this method throws an error", "error fix/debug"},
		{"code other", "refactor this class", "code related work"},
		{"create beats error", "create a function, fix this error", "code implementation request"},
		{"short text", "hello there", "hello there"},
		{"whitespace normalized", "  hello \n\n\t there  ", "hello there"},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"fifty one", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Summarize(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentSummarizerCodeScenario(t *testing.T) {
	s := NewContentSummarizer(i18n.English)
	got, ok := s.Summarize("implement a function to parse CSV, fix the error in parser.py")
	require.True(t, ok)
	assert.Equal(t, "error fix/debug", got)
}

func TestContentSummarizerJapanese(t *testing.T) {
	s := NewContentSummarizer(i18n.Japanese)

	tests := []struct {
		input string
		want  string
	}{
		{"この画像 diagram.png を見て", "画像ファイル: diagram.png"},
		{"/Users/me/src/app.py を作成してください", "ファイル作成: app.py"},
		{"/Users/me/src/app.py を修正して", "ファイル編集: app.py"},
		{"/Users/me/src/app.py を確認", "ファイル確認: app.py"},
		{"/Users/me/ドキュメント/メモ.md を読み込んで", "ファイル確認: メモ.md"},
		{"https://example.jp/page を要約", "Web参照: example.jp"},
		{"関数を作って", "コード実装依頼"},
		{"コードのエラーを直して", "エラー修正・デバッグ"},
		{"クラス設計の相談", "コード関連の作業"},
		{"English keywords still match: refactor this code", "コード関連の作業"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := s.Summarize(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentSummarizerLongText(t *testing.T) {
	s := NewContentSummarizer(i18n.English)

	long := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon"
	require.Greater(t, len(long), 100)
	got, ok := s.Summarize(long)
	require.True(t, ok)
	assert.Equal(t, "alpha beta gamma delta epsilon zeta eta theta iota...", got)

	words := strings.Repeat("abcdefghijkl ", 12)
	got, ok = s.Summarize(words)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("abcdefghijkl ", 4)[:50]+"...", got)
}

func TestContentSummarizerTruncatesRunes(t *testing.T) {
	s := NewContentSummarizer(i18n.Japanese)
	text := strings.Repeat("あ", 60)
	got, ok := s.Summarize(text)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("あ", 50)+"...", got)
}

func TestContentSummarizerEmpty(t *testing.T) {
	s := NewContentSummarizer(i18n.English)
	for _, in := range []string{"", "   ", "\n\t"} {
		_, ok := s.Summarize(in)
		assert.False(t, ok, "%q", in)
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"image-file", "image-data", "screenshot", "file-path",
		"web-reference", "code-request", "long-text", "short-text",
	}, names)
}

func TestRulesIndependently(t *testing.T) {
	rules := DefaultRules()
	byName := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byName[r.Name] = r
	}

	captured, ok := byName["image-file"].Match("x /a/b/c.jpeg y")
	require.True(t, ok)
	assert.Equal(t, "c.jpeg", captured)

	_, ok = byName["image-data"].Match(strings.Repeat("A", 1000))
	assert.False(t, ok, "exactly 1000 characters is not long")

	_, ok = byName["image-data"].Match(strings.Repeat("A", 1000) + "==")
	assert.True(t, ok)

	_, ok = byName["image-data"].Match(strings.Repeat("A!", 600))
	assert.False(t, ok)

	captured, ok = byName["web-reference"].Match("go to https://a.example.org/x?y=1")
	require.True(t, ok)
	assert.Equal(t, "a.example.org", captured)

	_, ok = byName["long-text"].Match(strings.Repeat("a", 100))
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\n\nb \t c \r\n"))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestHost(t *testing.T) {
	host, ok := Host("https://docs.python.org/3/library")
	require.True(t, ok)
	assert.Equal(t, "docs.python.org", host)

	_, ok = Host("ftp://example.com")
	assert.False(t, ok)
}
