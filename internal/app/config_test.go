package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsubmit/internal/job"
	"github.com/zclconf/go-cty/cty"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{JobPath: "jobs"}},
		{name: "missing path", cfg: Config{}, wantErr: "JobPath is a required"},
		{name: "dry run and submit", cfg: Config{JobPath: "jobs", DryRun: true, Submit: true}, wantErr: "cannot be used together"},
		{name: "negative timeout", cfg: Config{JobPath: "jobs", SubmitTimeout: -time.Second}, wantErr: "must not be negative"},
		{name: "bad override", cfg: Config{JobPath: "jobs", Overrides: []string{"nodes"}}, wantErr: "expected key=value"},
		{name: "empty override key", cfg: Config{JobPath: "jobs", Overrides: []string{"=4"}}, wantErr: "expected key=value"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.JobPath, got.JobPath)
		})
	}
}

func TestParseOverride(t *testing.T) {
	testCases := []struct {
		in   string
		key  string
		want cty.Value
	}{
		{in: "nodes=2", key: "nodes", want: cty.NumberIntVal(2)},
		{in: "account=yeo-group", key: "account", want: cty.StringVal("yeo-group")},
		{in: "walltime=04:00:00", key: "walltime", want: cty.StringVal("04:00:00")},
		{in: `job_name="quoted"`, key: "job_name", want: cty.StringVal("quoted")},
		{in: "queue=", key: "queue", want: cty.StringVal("")},
		{in: `wait_for=["1","2"]`, key: "wait_for", want: cty.TupleVal([]cty.Value{cty.StringVal("1"), cty.StringVal("2")})},
		{in: "script_path=out/run.sh", key: "script_path", want: cty.StringVal("out/run.sh")},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			o, err := parseOverride(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.key, o.key)
			assert.True(t, tc.want.Equals(o.value).True(), "got %#v", o.value)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	d := job.New()
	var overrides []override
	for _, s := range []string{
		"nodes=3",
		"ppn=8",
		"wait_for=0123",
		"account=007",
		"job_name=1.50",
		"queue=1e3",
		"walltime=true",
		`command_list=["a", "b"]`,
		"wait_for_array=12[4]",
	} {
		o, err := parseOverride(s)
		require.NoError(t, err)
		overrides = append(overrides, o)
	}
	require.NoError(t, applyOverrides(d, overrides))
	assert.Equal(t, 3, d.Nodes)
	assert.Equal(t, 8, d.PPN)
	assert.Equal(t, []string{"0123"}, d.WaitFor)
	assert.Equal(t, "007", d.Account)
	assert.Equal(t, "1.50", d.Name)
	assert.Equal(t, "1e3", d.Queue)
	assert.Equal(t, "true", d.Walltime)
	assert.Equal(t, []string{"a", "b"}, d.Commands)
	assert.Equal(t, []job.ArrayDependency{{ArrayID: "12", Count: 4}}, d.WaitForArray)
}

func TestApplyOverrides_Errors(t *testing.T) {
	testCases := []struct {
		in    string
		check func(t *testing.T, err error)
	}{
		{
			in: "priority=1",
			check: func(t *testing.T, err error) {
				var unknownKey *job.UnknownKeyError
				require.ErrorAs(t, err, &unknownKey)
				assert.Equal(t, "priority", unknownKey.Key)
			},
		},
		{
			in: "nodes=many",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, `override "nodes"`)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			o, err := parseOverride(tc.in)
			require.NoError(t, err)
			tc.check(t, applyOverrides(job.New(), []override{o}))
		})
	}
}
