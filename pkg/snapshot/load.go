package snapshot

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/campushq/reconcile/pkg/constants"
	"github.com/campushq/reconcile/pkg/errors"
)

// Load reads a snapshot from a JSON or YAML file, chosen by extension.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if len(data) > constants.MaxSnapshotBytes {
		return nil, errors.NewMalformedSnapshotError("snapshot", path, "file exceeds the maximum snapshot size")
	}
	return parse(path, data)
}

// LoadFS reads a snapshot from a file within the given filesystem.
func LoadFS(fsys fs.FS, name string) (*Snapshot, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return parse(name, data)
}

// parse decodes snapshot bytes by file extension. JSON is the canonical
// export shape; YAML is accepted as a convenience.
func parse(path string, data []byte) (*Snapshot, error) {
	var s Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
	}
	return &s, nil
}
