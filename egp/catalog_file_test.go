package egp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
output:
  label: out
  strong: [0, 1]
groups:
  - regular:
      - {label: add, strong: [0, 0]}
      - {label: call, strong: [1], weak: [1]}
    terminal:
      - {label: x}
      - {label: one}
  - regular:
      - {label: def, strong: [0]}
    terminal:
      - {label: nop}
weak_map:
  call: def
`

func TestParseCatalogSpec(t *testing.T) {
	spec, err := ParseCatalogSpec([]byte(testCatalog))
	require.NoError(t, err)

	assert.Equal(t, "out", spec.Output.Label)
	assert.Equal(t, []int{0, 1}, spec.Output.Strong)
	require.Len(t, spec.Groups, 2)
	assert.Len(t, spec.Groups[0].Regular, 2)
	assert.Equal(t, []int{1}, spec.Groups[0].Regular[1].Weak)
	assert.Equal(t, map[string]string{"call": "def"}, spec.WeakMap)
}

func TestCatalogSpecBuildMatchesProgrammaticCatalog(t *testing.T) {
	spec, err := ParseCatalogSpec([]byte(testCatalog))
	require.NoError(t, err)
	fromFile, err := spec.Build(NewSource(1))
	require.NoError(t, err)

	want := twoGroupCatalog(t, 1)
	assert.Equal(t, want.ActivitiesByGroup, fromFile.ActivitiesByGroup)
	assert.Equal(t, want.TotalActivities, fromFile.TotalActivities)
	assert.Equal(t, want.Regular, fromFile.Regular)
	assert.Equal(t, want.WeakMap, fromFile.WeakMap)
	for g := range want.Terminal {
		for i := range want.Terminal[g] {
			assert.Equal(t, want.Terminal[g][i].Label, fromFile.Terminal[g][i].Label)
			assert.Equal(t, want.Terminal[g][i].Activity, fromFile.Terminal[g][i].Activity)
		}
	}
}

func TestParseCatalogSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "output: [unterminated"},
		{name: "no groups", data: "output: {label: out}\n"},
		{name: "missing output label", data: "output: {strong: [0]}\ngroups:\n  - terminal: [{label: x}]\n"},
		{name: "missing blueprint label", data: "output: {label: out}\ngroups:\n  - regular: [{strong: [0]}]\n    terminal: [{label: x}]\n"},
		{name: "negative activity", data: "output: {label: out, activity: -1}\ngroups:\n  - terminal: [{label: x}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseCatalogSpec([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, spec)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(good, []byte(testCatalog), 0o644))
	catalog, err := LoadCatalogFile(good, NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 6, catalog.TotalActivities)

	// Valid YAML, but the output targets a group that does not exist.
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: {label: out, strong: [4]}\ngroups:\n  - regular: [{label: a}]\n    terminal: [{label: x}]\n"), 0o644))
	_, err = LoadCatalogFile(bad, NewSource(1))
	require.ErrorIs(t, err, ErrUnknownGroup)

	_, err = LoadCatalogFile(filepath.Join(dir, "missing.yaml"), NewSource(1))
	assert.Error(t, err)
}
