package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeFile(t, "study.yaml", `
baseline_path: data/baseline.json
advice_path: data/advice.json
log_path: results/judgments.db
max_items: 5
subjects:
  - u2
  - u1
`)

	study, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/baseline.json", study.BaselinePath)
	assert.Equal(t, 5, study.MaxItems)
	assert.Equal(t, []string{"u2", "u1"}, study.Subjects)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeFile(t, "study.yaml", `
baseline_path: b.json
advice_path: a.json
`)

	study, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxItems, study.MaxItems)
	assert.Equal(t, "results/judgments.db", study.LogPath)
	assert.Empty(t, study.Subjects)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeNotFound, ce.Code)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "study.yaml", "baseline_path: [unclosed")
	_, err := Load(path)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeParse, ce.Code)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing baseline path", "advice_path: a.json\n"},
		{"empty advice path", "baseline_path: b.json\nadvice_path: \"\"\n"},
		{"negative max items", "baseline_path: b.json\nadvice_path: a.json\nmax_items: -1\n"},
		{"empty subject entry", "baseline_path: b.json\nadvice_path: a.json\nsubjects: [\"u1\", \"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "study.yaml", tt.yaml)
			_, err := Load(path)
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, ErrCodeSchema, ce.Code)
		})
	}
}

func TestLoadDataset(t *testing.T) {
	path := writeFile(t, "baseline.json", `{
		"u1": {"grade": "A", "response": "foo"},
		"u2": {"grade": "B", "response": "bar"}
	}`)

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "foo", ds["u1"]["response"])
}

func TestLoadDataset_Errors(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, IsConfigError(err))

	path := writeFile(t, "bad.json", "not json")
	_, err = LoadDataset(path)
	assert.True(t, IsConfigError(err))

	path = writeFile(t, "empty.json", "{}")
	_, err = LoadDataset(path)
	assert.True(t, IsConfigError(err))
}
