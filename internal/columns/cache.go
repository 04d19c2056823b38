package columns

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datagrid/internal/grid"
	"datagrid/internal/util/logx"
)

// CacheDir is where registries inferred for input files are remembered.
// DATAGRID_CACHE_DIR overrides the default under the user cache dir.
func CacheDir() string {
	if d := os.Getenv("DATAGRID_CACHE_DIR"); d != "" {
		return d
	}
	if d, err := os.UserCacheDir(); err == nil {
		return filepath.Join(d, "datagrid", "columns")
	}
	return filepath.Join(os.TempDir(), "datagrid-columns")
}

// cacheKey derives a stable key from the absolute file path.
func cacheKey(inputPath string) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return "", err
	}
	h := sha1.Sum([]byte(abs))
	return hex.EncodeToString(h[:]), nil
}

func cachePath(inputPath string) (string, error) {
	key, err := cacheKey(inputPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(CacheDir(), fmt.Sprintf("columns_%s.yaml", key)), nil
}

// LoadCached returns the registry remembered for inputPath, if any.
func LoadCached(inputPath string) (grid.Columns, bool) {
	p, err := cachePath(inputPath)
	if err != nil {
		return nil, false
	}
	cols, err := LoadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logx.Warnf("columns: ignoring cache %s: %v", p, err)
		}
		return nil, false
	}
	logx.Infof("columns: cache hit for %s", inputPath)
	return cols, true
}

// SaveCached remembers cols for inputPath. The file is written to a
// temporary name first and renamed into place.
func SaveCached(inputPath string, cols grid.Columns) error {
	p, err := cachePath(inputPath)
	if err != nil {
		return err
	}
	data, err := Marshal(cols)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	logx.Infof("columns: cached registry for %s at %s", inputPath, p)
	return nil
}
