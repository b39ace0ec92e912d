package submit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsubmit/internal/ctxlog"
)

type fakeRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return []byte(f.out), f.err
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestParseJobID(t *testing.T) {
	testCases := []struct {
		output string
		want   string
		ok     bool
	}{
		{output: `Your job 12345 ("align") has been submitted`, want: "12345", ok: true},
		{output: "775241.maple\n", want: "775241", ok: true},
		{output: "Submitted batch job 49229449", want: "49229449", ok: true},
		{output: "qsub: job rejected", ok: false},
		{output: "", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.output, func(t *testing.T) {
			got, ok := ParseJobID(tc.output)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClient_Submit(t *testing.T) {
	runner := &fakeRunner{out: "Your job 42 has been submitted\n"}
	c := &Client{Binary: "qsub", Runner: runner}

	id, err := c.Submit(testContext(), "/tmp/job.sh")
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, "qsub", runner.name)
	assert.Equal(t, []string{"/tmp/job.sh"}, runner.args)
}

func TestClient_SubmitCommandFails(t *testing.T) {
	cause := errors.New("exit status 1")
	c := &Client{Binary: "qsub", Runner: &fakeRunner{out: "123", err: cause}}

	id, err := c.Submit(testContext(), "job.sh")
	assert.Empty(t, id)

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "job.sh", failed.Script)
}

func TestClient_SubmitNoJobID(t *testing.T) {
	c := &Client{Binary: "qsub", Runner: &fakeRunner{out: "queue is closed"}}

	_, err := c.Submit(testContext(), "job.sh")

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Nil(t, failed.Err)
	assert.Equal(t, "queue is closed", failed.Output)
}

func TestClient_SubmitWithStubBinary(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "qsub")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\necho \"Your job 42 has been submitted\"\n"), 0o755))

	id, err := New(stub).Submit(testContext(), filepath.Join(dir, "job.sh"))
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestClient_SubmitStubBinaryExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "qsub")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\necho 'qsub: unknown queue' >&2\nexit 3\n"), 0o755))

	_, err := New(stub).Submit(testContext(), "job.sh")

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, err.Error(), "unknown queue")
}

func TestNew_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, New("").Binary)
}
