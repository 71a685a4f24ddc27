// Package summarizer turns free text and tool invocations into short topic
// labels.
package summarizer

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sdpower/ccreport-go/internal/i18n"
)

const (
	maxTopicRunes   = 50
	longTextRunes   = 100
	leadingWords    = 10
	base64MinRunes  = 1000
	ellipsis        = "..."
	inlineImageMark = "data:image"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	imageFileRe  = regexp.MustCompile(`(?i)(?:^|\s|/)([^/\s]+\.(?:png|jpg|jpeg|gif|bmp|svg|webp))(?:[^\p{L}\p{N}_]|$)`)
	base64Re     = regexp.MustCompile(`^[A-Za-z0-9+/\s]+={0,2}$`)
	filePathRe   = regexp.MustCompile(`(?:^|\s)(/[\p{L}\p{N}_\-./]+\.[\p{L}\p{N}_]+)`)
	urlHostRe    = regexp.MustCompile(`https?://[^\s]+`)
	hostRe       = regexp.MustCompile(`https?://([^/]+)`)
)

// Keyword sets. Each holds the Japanese and English vocabulary; English
// entries are matched against the lowercased text.
var (
	fileCreateWords = []string{"作成", "生成", "create"}
	fileEditWords   = []string{"編集", "修正", "edit"}
	fileReadWords   = []string{"読み", "確認", "read"}
	codeWords       = []string{"実装", "コード", "プログラム", "関数", "クラス", "メソッド",
		"implement", "code", "function", "class", "method"}
	codeCreateWords = []string{"作成", "作って", "create"}
	codeErrorWords  = []string{"エラー", "修正", "error"}
)

// Rule is one step of the content cascade. Match inspects the normalized
// text and returns the captured value; Format builds the label from it.
type Rule struct {
	Name   string
	Match  func(text string) (string, bool)
	Format func(l i18n.Labels, text, captured string) string
}

// ContentSummarizer applies Rules in order; the first match wins.
type ContentSummarizer struct {
	labels i18n.Labels
	rules  []Rule
}

func NewContentSummarizer(lang i18n.Language) *ContentSummarizer {
	return &ContentSummarizer{
		labels: i18n.For(lang),
		rules:  DefaultRules(),
	}
}

// Rules returns the cascade in evaluation order.
func (s *ContentSummarizer) Rules() []Rule {
	return s.rules
}

// Summarize returns a topic label for text, or false when text is empty
// after whitespace normalization.
func (s *ContentSummarizer) Summarize(text string) (string, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", false
	}
	for _, r := range s.rules {
		if captured, ok := r.Match(normalized); ok {
			return r.Format(s.labels, normalized, captured), true
		}
	}
	return "", false
}

// Normalize collapses whitespace runs to single spaces and trims.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// DefaultRules is the fixed precedence: image, screenshot, file path, URL,
// code keywords, then plain text. Reordering changes output.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "image-file",
			Match: func(text string) (string, bool) {
				m := imageFileRe.FindStringSubmatch(text)
				if m == nil {
					return "", false
				}
				return m[1], true
			},
			Format: func(l i18n.Labels, _, name string) string {
				return fmt.Sprintf(l.ImageFileFmt, name)
			},
		},
		{
			Name: "image-data",
			Match: func(text string) (string, bool) {
				if strings.Contains(text, inlineImageMark) {
					return "", true
				}
				return "", utf8.RuneCountInString(text) > base64MinRunes && base64Re.MatchString(text)
			},
			Format: func(l i18n.Labels, _, _ string) string {
				return l.ImageData
			},
		},
		{
			Name: "screenshot",
			Match: func(text string) (string, bool) {
				lower := strings.ToLower(text)
				return "", strings.Contains(lower, "screenshot") || strings.Contains(lower, "screencapture")
			},
			Format: func(l i18n.Labels, _, _ string) string {
				return l.Screenshot
			},
		},
		{
			Name: "file-path",
			Match: func(text string) (string, bool) {
				m := filePathRe.FindStringSubmatch(text)
				if m == nil {
					return "", false
				}
				return path.Base(m[1]), true
			},
			Format: func(l i18n.Labels, text, name string) string {
				switch {
				case containsAny(text, fileCreateWords):
					return fmt.Sprintf(l.FileCreateFmt, name)
				case containsAny(text, fileEditWords):
					return fmt.Sprintf(l.FileEditFmt, name)
				case containsAny(text, fileReadWords):
					return fmt.Sprintf(l.FileReadFmt, name)
				default:
					return fmt.Sprintf(l.FileOpFmt, name)
				}
			},
		},
		{
			Name: "web-reference",
			Match: func(text string) (string, bool) {
				return Host(urlHostRe.FindString(text))
			},
			Format: func(l i18n.Labels, _, host string) string {
				return fmt.Sprintf(l.WebRefFmt, host)
			},
		},
		{
			Name: "code-request",
			Match: func(text string) (string, bool) {
				return "", containsAny(text, codeWords)
			},
			Format: func(l i18n.Labels, text, _ string) string {
				switch {
				case containsAny(text, codeCreateWords):
					return l.CodeImpl
				case containsAny(text, codeErrorWords):
					return l.CodeFix
				default:
					return l.CodeWork
				}
			},
		},
		{
			Name: "long-text",
			Match: func(text string) (string, bool) {
				return "", utf8.RuneCountInString(text) > longTextRunes
			},
			Format: func(_ i18n.Labels, text, _ string) string {
				words := strings.Fields(text)
				if len(words) > leadingWords {
					words = words[:leadingWords]
				}
				head, _ := truncateRunes(strings.Join(words, " "), maxTopicRunes)
				return head + ellipsis
			},
		},
		{
			Name: "short-text",
			Match: func(text string) (string, bool) {
				return "", true
			},
			Format: func(_ i18n.Labels, text, _ string) string {
				if head, cut := truncateRunes(text, maxTopicRunes); cut {
					return head + ellipsis
				}
				return text
			},
		},
	}
}

// Host extracts the host of an http(s) URL.
func Host(url string) (string, bool) {
	m := hostRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// containsAny matches Japanese words verbatim and English words
// case-insensitively.
func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) || strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	return string([]rune(s)[:n]), true
}
