// Package backup keeps timestamped copies of the ledger's table files
// under the data directory, with best-effort upload of each copy to the
// remote mirror when one is configured.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rmorpir/ampaconta/internal/store"
)

const stampLayout = "20060102_150405"

var tableFiles = []string{"transactions.csv", "balance.csv"}

// Info describes one backup file on disk.
type Info struct {
	Name       string
	ModTime    time.Time
	SizeBytes  int64
	RemoteSync bool
}

// Manager creates, lists, and restores backups.
type Manager struct {
	dataDir string
	remote  store.Remote // nil when running local-only
}

// New creates a manager over the given data directory.
func New(dataDir string, remote store.Remote) *Manager {
	return &Manager{dataDir: dataDir, remote: remote}
}

func (m *Manager) backupDir() string {
	return filepath.Join(m.dataDir, "backups")
}

// Create copies every present table file into the backups folder with a
// timestamp suffix and uploads each copy to the mirror when available.
// Upload failures don't fail the backup; the Info records the miss.
func (m *Manager) Create(ctx context.Context) ([]Info, error) {
	if err := os.MkdirAll(m.backupDir(), 0o750); err != nil {
		return nil, fmt.Errorf("backup: creating dir: %w", err)
	}

	stamp := time.Now().Format(stampLayout)
	var made []Info
	for _, file := range tableFiles {
		src := filepath.Join(m.dataDir, file)
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return made, fmt.Errorf("backup: reading %s: %w", file, err)
		}

		base := strings.TrimSuffix(file, ".csv")
		name := fmt.Sprintf("%s_%s.csv", base, stamp)
		dst := filepath.Join(m.backupDir(), name)
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return made, fmt.Errorf("backup: writing %s: %w", name, err)
		}

		info := Info{Name: name, ModTime: time.Now(), SizeBytes: int64(len(data))}
		if m.remote != nil {
			info.RemoteSync = m.remote.Put(ctx, "backups/"+name, data) == nil
		}
		made = append(made, info)
	}
	return made, nil
}

// List returns all backups on disk, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("backup: listing: %w", err)
	}

	var out []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: e.Name(), ModTime: fi.ModTime(), SizeBytes: fi.Size()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out, nil
}

// Restore copies the named backup over the live table file it was taken
// from. The original table name is the part before the first underscore.
func (m *Manager) Restore(name string) error {
	src := filepath.Join(m.backupDir(), name)
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("backup: reading %s: %w", name, err)
	}

	table, _, ok := strings.Cut(name, "_")
	if !ok {
		return fmt.Errorf("backup: %s has no timestamp suffix", name)
	}
	dst := filepath.Join(m.dataDir, table+".csv")
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return fmt.Errorf("backup: restoring %s: %w", name, err)
	}
	return nil
}
