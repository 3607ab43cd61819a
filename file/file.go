package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/util"
)

// ExportName builds the base filename for an exported score, e.g.
// "pianosight_Fsm_3-4_8bat_advanced_90bpm".
func ExportName(s model.Score, bpm float64) string {
	k := strings.Join(strings.Fields(s.Key), "-")
	k = strings.ReplaceAll(k, "#", "s")
	ts := strings.ReplaceAll(string(s.TimeSignature), "/", "-")
	return fmt.Sprintf("pianosight_%s_%s_%dbat_%s_%.0fbpm", k, ts, s.NumMeasures(), s.Difficulty, bpm)
}

// Export writes data to dir/name+ext, creating dir when needed, and
// returns the written path.
func Export(dir, name, ext string, data []byte) (string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("could not export %s: %w", path, err)
	}
	return path, nil
}
