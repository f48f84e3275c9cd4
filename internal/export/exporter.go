package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Indent is the indentation of exported JSON documents
const Indent = "    "

// ExportError reports why a report cannot be written to Path
type ExportError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot export to %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot export to %s: %s", e.Path, e.Reason)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// JSONExporter writes reports as indented JSON to a checked path
type JSONExporter struct {
	path string
}

// NewJSONExporter checks that path can be written and returns an exporter
// for it. Without override an existing file is an error. The parent
// directory must exist and be writable.
func NewJSONExporter(path string, override bool) (*JSONExporter, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ExportError{Path: path, Reason: "invalid path", Err: err}
	}

	dir := filepath.Dir(abs)
	dirInfo, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ExportError{Path: abs, Reason: fmt.Sprintf("directory %s doesn't exist", dir), Err: err}
	}
	if err != nil {
		return nil, &ExportError{Path: abs, Reason: fmt.Sprintf("cannot access directory %s", dir), Err: err}
	}
	if !dirInfo.IsDir() {
		return nil, &ExportError{Path: abs, Reason: fmt.Sprintf("%s is not a directory", dir)}
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return nil, &ExportError{Path: abs, Reason: "path is a directory"}
	case err == nil && !override:
		return nil, &ExportError{Path: abs, Reason: "file already exists", Err: fs.ErrExist}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, &ExportError{Path: abs, Reason: "cannot access file", Err: err}
	}

	if err := checkWritable(dir); err != nil {
		return nil, &ExportError{Path: abs, Reason: fmt.Sprintf("no right to write in directory %s", dir), Err: err}
	}

	return &JSONExporter{path: abs}, nil
}

// Path returns the absolute output path
func (e *JSONExporter) Path() string {
	return e.path
}

// Export writes v to the output path
func (e *JSONExporter) Export(v any) error {
	data, err := json.MarshalIndent(v, "", Indent)
	if err != nil {
		return &ExportError{Path: e.path, Reason: "failed to encode report", Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return &ExportError{Path: e.path, Reason: "failed to write file", Err: err}
	}

	log.Debug().Str("path", e.path).Int("bytes", len(data)).Msg("Report exported")
	return nil
}
