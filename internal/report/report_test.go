package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Row{
		{Job: "index", QueueType: "SGE", ScriptPath: "index.sh", JobID: "42", Status: StatusSubmitted},
		{Job: "align-long-name", QueueType: "PBS", ScriptPath: "align.sh", Status: StatusWritten},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "JOB"))
	assert.Contains(t, lines[1], "index")
	assert.Contains(t, lines[1], "submitted")
	assert.Contains(t, lines[1], "42")
	assert.Contains(t, lines[2], "written")
	assert.Contains(t, lines[2], "-")
	assert.True(t, strings.HasSuffix(lines[2], "align.sh"))
	assert.NotContains(t, buf.String(), "\x1b[", "no ANSI escapes when writing to a buffer")
}
