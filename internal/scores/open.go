package scores

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend kinds accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the store of the given backend kind under dataDir. JSON
// documents live in dataDir/scores; SQLite uses dataDir/scores.db.
func Open(kind, dataDir string) (Store, error) {
	switch kind {
	case BackendJSON, "":
		return NewJSONStore(filepath.Join(dataDir, "scores"))
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, "scores.db"))
	default:
		return nil, fmt.Errorf("unknown score store %q", kind)
	}
}
