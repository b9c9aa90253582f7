package agent

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("# Portfolio\n\nprices are up")
	assert.Contains(t, out, "Portfolio")
	assert.Contains(t, out, "prices are up")
}

func TestNew_RendersReplies(t *testing.T) {
	var sb strings.Builder
	a := New(&sb, os.Stdin, NewAnalyst())
	require.NotNil(t, a.Render)

	// the hook is replaceable, e.g. for raw output.
	a.Render = func(md string) string { return md }
	assert.Equal(t, "*raw*", a.Render("*raw*"))
}
