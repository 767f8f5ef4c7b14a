// Package cache is a file-backed, per-instance cache of the last
// successfully collected status line. One file per (population, identity)
// pair, written atomically, read through on every collection cycle.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/babakskr/Conduit-console/internal/errors"
	"github.com/babakskr/Conduit-console/internal/logger"
	"github.com/babakskr/Conduit-console/internal/util"
)

const fileSuffix = ".stat"

// Cache stores one payload per key under a directory. Entries never expire
// on disk; freshness is judged at read time against the TTL.
type Cache struct {
	dir string
	ttl time.Duration
	log logger.Logger

	now func() time.Time // test hook
}

// New creates a cache rooted at dir. The TTL is the larger of floor and
// twice the refresh interval, so entries cannot expire faster than the
// refresh cadence can re-populate them.
func New(dir string, refresh, floor time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create cache directory "+dir,
			"Check directory permissions or point cache_dir elsewhere.")
	}

	ttl := 2 * refresh
	if floor > ttl {
		ttl = floor
	}

	return &Cache{
		dir: dir,
		ttl: ttl,
		log: logger.NewEnvLogger("[cache]"),
		now: time.Now,
	}, nil
}

// TTL returns the effective entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Key builds the cache key for an instance: population plus a
// filesystem-safe transform of its identity.
func Key(population, identity string) string {
	return population + "-" + util.Sanitize(identity)
}

// Read returns the stored payload and its age. A missing or unreadable
// entry is a miss, not an error.
func (c *Cache) Read(key string) (payload string, age time.Duration, ok bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", 0, false
	}

	ts, payload, ok := decode(string(raw))
	if !ok {
		return "", 0, false
	}

	return payload, c.now().Sub(time.Unix(ts, 0)), true
}

// Write stores payload under key, stamped with the current time. The
// write goes to a temp file first and is renamed into place so a
// concurrent reader never observes a torn entry.
func (c *Cache) Write(key, payload string) error {
	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "cache write failed")
	}
	tmpName := tmp.Name()

	_, werr := fmt.Fprintf(tmp, "%d|%s", c.now().Unix(), payload)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmpName)
		if werr == nil {
			werr = cerr
		}
		return errors.Wrap(werr, "cache write failed")
	}

	if err := os.Rename(tmpName, c.path(key)); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "cache write failed")
	}
	return nil
}

// Fetch implements the read-through policy. A cached entry younger than
// the TTL is returned without calling live. Otherwise live is attempted
// exactly once: on success the cache is overwritten and the fresh payload
// returned; on failure the last cached payload (however stale) is
// returned, so a live-fetch failure never blanks a row that ever had
// data. stale reports that the returned payload is older than the TTL.
func (c *Cache) Fetch(key string, live func() (string, error)) (payload string, stale, ok bool) {
	cached, age, hit := c.Read(key)
	if hit && age <= c.ttl {
		return cached, false, true
	}

	fresh, err := live()
	if err == nil {
		if werr := c.Write(key, fresh); werr != nil {
			c.log.Warn("write %s: %v", key, werr)
		}
		return fresh, false, true
	}

	c.log.Debug("live fetch %s failed, serving cached copy: %v", key, err)
	if hit {
		return cached, true, true
	}
	return "", false, false
}

// Prune removes entries whose key is absent from known and whose entry is
// older than maxAge. Called once per cycle by the orchestrator so files
// for departed instances do not accumulate forever. Best effort.
func (c *Cache) Prune(known map[string]struct{}, maxAge time.Duration) {
	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := c.now().Add(-maxAge)
	for _, d := range dirents {
		name := d.Name()
		if !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key := strings.TrimSuffix(name, fileSuffix)
		if _, live := known[key]; live {
			continue
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			c.log.Debug("pruned departed entry %s", key)
		}
	}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+fileSuffix)
}

// decode splits "<unix_timestamp>|<payload>".
func decode(raw string) (ts int64, payload string, ok bool) {
	sep := strings.IndexByte(raw, '|')
	if sep < 1 {
		return 0, "", false
	}
	ts, err := strconv.ParseInt(raw[:sep], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return ts, raw[sep+1:], true
}
