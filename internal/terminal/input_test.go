package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Prompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompterWith(strings.NewReader("  abc  \nsecond\n"), &out)

	got, err := p.Prompt("Consumer key: ")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.Equal(t, "Consumer key: ", out.String())

	got, err = p.Prompt("Next: ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestPrompter_PromptEOF(t *testing.T) {
	p := NewPrompterWith(strings.NewReader("last"), &bytes.Buffer{})

	got, err := p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)
}

func TestClearScreen(t *testing.T) {
	var out bytes.Buffer
	ClearScreen(&out)
	assert.Equal(t, "\x1b[2J\x1b[0;0f", out.String())
}
