package export

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"logscope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONExporter(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o644))
	notADir := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	tests := []struct {
		name      string
		path      string
		override  bool
		expectErr string
	}{
		{name: "new file", path: filepath.Join(dir, "stats.json")},
		{name: "existing file with override", path: existing, override: true},
		{name: "existing file without override", path: existing, expectErr: "file already exists"},
		{name: "missing directory", path: filepath.Join(dir, "missing", "stats.json"), override: true, expectErr: "doesn't exist"},
		{name: "parent is a file", path: filepath.Join(notADir, "stats.json"), override: true, expectErr: "is not a directory"},
		{name: "parent is a file without override", path: filepath.Join(notADir, "stats.json"), expectErr: "is not a directory"},
		{name: "ancestor is a file", path: filepath.Join(notADir, "sub", "stats.json"), override: true, expectErr: "cannot access directory"},
		{name: "path is a directory", path: dir, override: true, expectErr: "path is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := NewJSONExporter(tt.path, tt.override)
			if tt.expectErr == "" {
				require.NoError(t, err)
				assert.True(t, filepath.IsAbs(exp.Path()))
				return
			}

			var exportErr *ExportError
			require.ErrorAs(t, err, &exportErr)
			assert.Contains(t, exportErr.Error(), tt.expectErr)
			assert.Nil(t, exp)
		})
	}
}

func TestNewJSONExporter_ExistingWithoutOverrideIsErrExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := NewJSONExporter(path, false)
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestNewJSONExporter_ReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for this user")
	}

	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := NewJSONExporter(filepath.Join(dir, "stats.json"), true)

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, exportErr.Reason, "no right to write")
}

func TestJSONExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	exp, err := NewJSONExporter(path, false)
	require.NoError(t, err)

	report := &model.AnalysisReport{
		Path:          "access.log",
		TotalRequests: 0,
		Stats: model.Stats{
			Requests: model.RequestStats{HTTPMethodRate: []model.MethodStat{}},
		},
	}
	require.NoError(t, exp.Export(report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "{\n    \"path\": \"access.log\""), "four-space indentation")
	assert.NotContains(t, content, "\"analysis\"")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(0), decoded["total_requests"])
	requests := decoded["stats"].(map[string]any)["requests"].(map[string]any)
	assert.Equal(t, []any{}, requests["http_method_rate"])
}

func TestJSONExporter_ExportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new one"), 0o644))

	exp, err := NewJSONExporter(path, true)
	require.NoError(t, err)
	require.NoError(t, exp.Export(map[string]int{"total_requests": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"total_requests\": 1\n}\n", string(data))
}

func TestExportError(t *testing.T) {
	err := &ExportError{Path: "/tmp/x.json", Reason: "file already exists", Err: fs.ErrExist}
	assert.Equal(t, "cannot export to /tmp/x.json: file already exists: file already exists", err.Error())
	assert.ErrorIs(t, err, fs.ErrExist)

	err = &ExportError{Path: "/tmp", Reason: "path is a directory"}
	assert.Equal(t, "cannot export to /tmp: path is a directory", err.Error())
}
