// Package i18n holds the label tables for report output. Only emitted text
// is localized; keyword matching in the summarizers is always bilingual.
package i18n

import (
	"fmt"
	"strings"
)

type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"
)

// Parse accepts a language tag such as "en", "ja" or "ja_JP.UTF-8".
func Parse(tag string) (Language, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case t == "en" || strings.HasPrefix(t, "en_") || strings.HasPrefix(t, "en-") || t == "c" || t == "posix":
		return English, nil
	case t == "ja" || strings.HasPrefix(t, "ja_") || strings.HasPrefix(t, "ja-"):
		return Japanese, nil
	}
	return "", fmt.Errorf("unsupported language %q", tag)
}

// Labels is the full set of localized strings. Fields ending in Fmt are
// fmt format strings.
type Labels struct {
	// Content summarizer
	ImageFileFmt  string
	ImageData     string
	Screenshot    string
	FileCreateFmt string
	FileEditFmt   string
	FileReadFmt   string
	FileOpFmt     string
	WebRefFmt     string
	CodeImpl      string
	CodeFix       string
	CodeWork      string

	// Tool summarizer; args are tool name and executable
	BashFmt string

	// Report
	Title            string
	GeneratedFmt     string
	TimestampLayout  string
	PeriodFmt        string
	TotalSessions    string
	ActiveProjects   string
	ProjectSummary   string
	Sessions         string
	Messages         string
	Period           string
	Topics           string
	Tools            string
	ToolStats        string
	DailyActivity    string
	HourlyActivity   string
	CountFmt         string
	TimesFmt         string
	HourFmt          string
	NoData           string
	ColProject       string
	ColSession       string
	ColEntries       string
	ColMessages      string
	ColFirst         string
	ColLast          string
	ColTool          string
	ColCount         string
	ColDate          string
	SessionListTitle string
}

var tables = map[Language]Labels{
	English: {
		ImageFileFmt:  "image file: %s",
		ImageData:     "image data",
		Screenshot:    "screenshot analysis",
		FileCreateFmt: "file creation: %s",
		FileEditFmt:   "file edit: %s",
		FileReadFmt:   "file read: %s",
		FileOpFmt:     "file operation: %s",
		WebRefFmt:     "web reference: %s",
		CodeImpl:      "code implementation request",
		CodeFix:       "error fix/debug",
		CodeWork:      "code related work",

		BashFmt: "[%s] %s command execution",

		Title:            "Claude Code Conversation Report",
		GeneratedFmt:     "Generated: %s",
		TimestampLayout:  "2006-01-02 15:04:05",
		PeriodFmt:        "Period: %s - %s",
		TotalSessions:    "Total sessions",
		ActiveProjects:   "Active projects",
		ProjectSummary:   "Projects",
		Sessions:         "Sessions",
		Messages:         "Messages",
		Period:           "Period",
		Topics:           "Main topics",
		Tools:            "Tools used",
		ToolStats:        "Tool usage (overall)",
		DailyActivity:    "Daily activity",
		HourlyActivity:   "Hourly activity",
		CountFmt:         "%d entries",
		TimesFmt:         "%d times",
		HourFmt:          "%02d:00",
		NoData:           "No sessions found for the specified period.",
		ColProject:       "Project",
		ColSession:       "Session",
		ColEntries:       "Entries",
		ColMessages:      "Messages",
		ColFirst:         "First",
		ColLast:          "Last",
		ColTool:          "Tool",
		ColCount:         "Count",
		ColDate:          "Date",
		SessionListTitle: "Sessions",
	},
	Japanese: {
		ImageFileFmt:  "画像ファイル: %s",
		ImageData:     "画像データの処理",
		Screenshot:    "スクリーンショットの解析",
		FileCreateFmt: "ファイル作成: %s",
		FileEditFmt:   "ファイル編集: %s",
		FileReadFmt:   "ファイル確認: %s",
		FileOpFmt:     "ファイル操作: %s",
		WebRefFmt:     "Web参照: %s",
		CodeImpl:      "コード実装依頼",
		CodeFix:       "エラー修正・デバッグ",
		CodeWork:      "コード関連の作業",

		BashFmt: "[%s] %sコマンド実行",

		Title:            "Claude Code 会話履歴レポート",
		GeneratedFmt:     "生成日時: %s",
		TimestampLayout:  "2006年01月02日 15:04:05",
		PeriodFmt:        "期間: %s 〜 %s",
		TotalSessions:    "総セッション数",
		ActiveProjects:   "アクティブプロジェクト数",
		ProjectSummary:   "プロジェクト別サマリー",
		Sessions:         "セッション数",
		Messages:         "メッセージ数",
		Period:           "期間",
		Topics:           "主な話題",
		Tools:            "使用ツール",
		ToolStats:        "ツール使用統計（全体）",
		DailyActivity:    "日別アクティビティ",
		HourlyActivity:   "時間帯別アクティビティ",
		CountFmt:         "%d件",
		TimesFmt:         "%d回",
		HourFmt:          "%02d時",
		NoData:           "指定期間のセッションが見つかりませんでした。",
		ColProject:       "プロジェクト",
		ColSession:       "セッション",
		ColEntries:       "エントリ",
		ColMessages:      "メッセージ",
		ColFirst:         "開始",
		ColLast:          "終了",
		ColTool:          "ツール",
		ColCount:         "回数",
		ColDate:          "日付",
		SessionListTitle: "セッション一覧",
	},
}

// For returns the labels for lang, falling back to English.
func For(lang Language) Labels {
	if l, ok := tables[lang]; ok {
		return l
	}
	return tables[English]
}
