package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/campushq/reconcile/pkg/constants"
	"github.com/campushq/reconcile/pkg/errors"
)

// Save writes the snapshot to a JSON or YAML file, chosen by extension.
func (s *Snapshot) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
		if err != nil {
			return errors.WrapParse("yaml", path, err)
		}
	default:
		data, err = json.MarshalIndent(s, "", "  ")
		if err != nil {
			return errors.WrapParse("json", path, err)
		}
		data = append(data, '\n')
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
