package fileinfo

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/gildas/go-errors"

	"github.com/CrestNiraj12/thumbpick/domain"
)

// Load reads an outpoint -> file info table from a JSON object file.
// An empty path yields an empty table.
func Load(path string) (map[string]domain.FileInfo, error) {
	infos := map[string]domain.FileInfo{}
	if strings.TrimSpace(path) == "" {
		return infos, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound.With("path", path).(errors.Error).Wrap(err)
	}
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, errors.JSONUnmarshalError.Wrap(err)
	}
	return infos, nil
}
