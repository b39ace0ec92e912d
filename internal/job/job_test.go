package job

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestResources_KeepsInsertionOrder(t *testing.T) {
	var r Resources
	r.Add("-l", "mem=4G")
	r.Add("-pe", "smp 4")
	r.Add("-l", "h_rt=2:00:00")

	want := []Pair{
		{Key: "-l", Value: "mem=4G"},
		{Key: "-l", Value: "h_rt=2:00:00"},
		{Key: "-pe", Value: "smp 4"},
	}
	if diff := cmp.Diff(want, r.Pairs()); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, r.Len())
}

func TestResources_DuplicatesAreKept(t *testing.T) {
	d := New()
	d.AddResource("-l", "mem=4G")
	d.AddResource("-l", "mem=4G")

	assert.Equal(t, []Pair{{Key: "-l", Value: "mem=4G"}, {Key: "-l", Value: "mem=4G"}}, d.Resources.Pairs())
}

func TestAddWait_AppendsInOrder(t *testing.T) {
	d := New()
	d.AddWait("10")
	d.AddWait("11")
	assert.Equal(t, []string{"10", "11"}, d.WaitFor)
}

func TestDefaultOutputPaths(t *testing.T) {
	d := New()
	d.ScriptPath = "/tmp/run.sh"
	assert.Equal(t, "/tmp/run.sh.out", d.StdoutPath())
	assert.Equal(t, "/tmp/run.sh.err", d.StderrPath())

	d.Stdout = "/logs/o"
	d.Stderr = "/logs/e"
	assert.Equal(t, "/logs/o", d.StdoutPath())
	assert.Equal(t, "/logs/e", d.StderrPath())
}

func TestParseArrayDependency(t *testing.T) {
	testCases := []struct {
		spec    string
		want    ArrayDependency
		str     string
		wantErr bool
	}{
		{spec: "123[4]", want: ArrayDependency{ArrayID: "123", Count: 4}, str: "123[4]"},
		{spec: "123[]", want: ArrayDependency{ArrayID: "123"}, str: "123[]"},
		{spec: "123.server", want: ArrayDependency{ArrayID: "123.server"}, str: "123.server[]"},
		{spec: "[3]", wantErr: true},
		{spec: "1[x]", wantErr: true},
		{spec: "5[0]", wantErr: true},
		{spec: "5[00]", wantErr: true},
		{spec: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.spec, func(t *testing.T) {
			got, err := ParseArrayDependency(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.str, got.String())
		})
	}
}

func TestParseQueueType(t *testing.T) {
	q, err := ParseQueueType(" pbs ")
	require.NoError(t, err)
	assert.Equal(t, PBS, q)

	q, err = ParseQueueType("SGE")
	require.NoError(t, err)
	assert.Equal(t, SGE, q)

	_, err = ParseQueueType("SLURM")
	require.Error(t, err)
}

func TestSet(t *testing.T) {
	d := New()
	require.NoError(t, d.Set("queue_type", "PBS"))
	require.NoError(t, d.Set("script_path", "job.sh"))
	require.NoError(t, d.Set("job_name", "first"))
	require.NoError(t, d.Set("job_name", "second"))
	require.NoError(t, d.Set("command_list", []string{"echo a", "echo b"}))
	require.NoError(t, d.Set("nodes", "4"))
	require.NoError(t, d.Set("ppn", 8))
	require.NoError(t, d.Set("wait_for", cty.TupleVal([]cty.Value{cty.StringVal("1"), cty.NumberIntVal(2)})))
	require.NoError(t, d.Set("wait_for_array", []string{"77[3]", "78"}))

	want := &Descriptor{
		QueueType:    PBS,
		ScriptPath:   "job.sh",
		Name:         "second",
		Commands:     []string{"echo a", "echo b"},
		Nodes:        4,
		PPN:          8,
		WaitFor:      []string{"1", "2"},
		WaitForArray: []ArrayDependency{{ArrayID: "77", Count: 3}, {ArrayID: "78"}},
	}
	if diff := cmp.Diff(want, d, cmp.AllowUnexported(Resources{})); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_Errors(t *testing.T) {
	d := New()

	err := d.Set("chunks", 2)
	var unknown *UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "chunks", unknown.Key)

	err = d.Set("nodes", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nodes"`)

	err = d.Set("job_name", nil)
	require.Error(t, err)

	err = d.Set("wait_for_array", []string{"[1]"})
	require.Error(t, err)
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "queue_type")
	assert.Contains(t, keys, "wait_for_array")
	assert.IsIncreasing(t, keys)
}

func TestAttributeType_CoversEveryKey(t *testing.T) {
	for _, key := range Keys() {
		ty, ok := AttributeType(key)
		require.True(t, ok, "key %q has no attribute type", key)
		assert.NotEqual(t, cty.NilType, ty)
	}
	ty, _ := AttributeType("nodes")
	assert.Equal(t, cty.Number, ty)
	ty, _ = AttributeType("wait_for")
	assert.True(t, ty.IsListType())

	_, ok := AttributeType("priority")
	assert.False(t, ok)
}
