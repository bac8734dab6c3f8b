package store

import (
	"encoding/json"
	"os"

	"sigil/internal/util/fsutil"
)

// writeJSON writes JSON via a temp file then rename.
func writeJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, append(b, '\n'), mode)
}
