package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		tag     string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{"EN", English, false},
		{"en_US.UTF-8", English, false},
		{"C", English, false},
		{"ja", Japanese, false},
		{"ja_JP.UTF-8", Japanese, false},
		{"ja-JP", Japanese, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := Parse(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, For(English), For(Language("xx")))
	assert.NotEqual(t, For(English).Title, For(Japanese).Title)
}

func TestTablesComplete(t *testing.T) {
	for lang, l := range tables {
		assert.NotEmpty(t, l.ImageFileFmt, lang)
		assert.NotEmpty(t, l.BashFmt, lang)
		assert.NotEmpty(t, l.HourFmt, lang)
		assert.NotEmpty(t, l.NoData, lang)
	}
}
