package sanitize_test

import (
	"testing"

	"github.com/horizonit/backend/pkg/sanitize"
	"github.com/stretchr/testify/assert"
)

func TestClean_StripsTagsKeepsContent(t *testing.T) {
	assert.Equal(t, "xhi", sanitize.Clean("<script>x</script>hi"))
}

func TestClean_RemovesDangerousCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quotes", `Jean "le pro" d'Arc`, "Jean le pro dArc"},
		{"sql-ish", "nice; DROP TABLE reviews", "nice DROP TABLE reviews"},
		{"parens and backtick", "call(me) `now`", "callme now"},
		{"angle pair swallowed as tag", "1 < 2 > 0", "1  0"},
		{"unclosed angle", "a < b", "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.Clean(tt.input))
		})
	}
}

func TestClean_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hello world", sanitize.Clean("  hello world  "))
}

func TestClean_EmptyAndTagOnlyInput(t *testing.T) {
	assert.Equal(t, "", sanitize.Clean(""))
	assert.Equal(t, "", sanitize.Clean("<br><img src=x>"))
}

func TestClean_PlainTextUntouched(t *testing.T) {
	assert.Equal(t, "Dépannage PC rapide", sanitize.Clean("Dépannage PC rapide"))
}
