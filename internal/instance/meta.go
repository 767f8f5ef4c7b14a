package instance

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/babakskr/Conduit-console/internal/util"
)

// MetaStore reads per-instance configuration files written at creation
// time. It is the read-only fallback for capacity parameters when runtime
// introspection yields no match.
type MetaStore struct {
	dir string
}

// NewMetaStore creates a store rooted at dir. Layout:
// <dir>/<population>/<identity>.yaml.
func NewMetaStore(dir string) *MetaStore {
	return &MetaStore{dir: dir}
}

// metaFile is the on-disk shape of a per-instance config file.
type metaFile struct {
	MaxConns  string `yaml:"max_conns"`
	Bandwidth string `yaml:"bandwidth"`
}

// Capacity returns the stored capacity parameters for an instance.
// A missing or unreadable file is a miss, not an error.
func (m *MetaStore) Capacity(population Population, identity string) (Capacity, bool) {
	path := filepath.Join(m.dir, string(population), util.Sanitize(identity)+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return NoCapacity(), false
	}

	var mf metaFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return NoCapacity(), false
	}

	c := NoCapacity()
	if mf.MaxConns != "" {
		c.MaxConns = mf.MaxConns
	}
	if mf.Bandwidth != "" {
		c.Bandwidth = mf.Bandwidth
	}
	return c, !c.IsEmpty()
}
