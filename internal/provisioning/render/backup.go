package render

import (
	"fmt"
	"os"
	"time"

	"github.com/imamik/hostforge/internal/platform/host"
)

// backupTimestampLayout is the suffix format for pre-overwrite copies.
const backupTimestampLayout = "20060102_150405"

// Writer applies a rendered set to the host, backing up any existing target
// before overwriting it. Targets are never deleted without a backup.
type Writer struct {
	sys host.System

	// Now is injectable for deterministic backup suffixes in tests.
	Now func() time.Time
}

// NewWriter returns a Writer over the given system.
func NewWriter(sys host.System) *Writer {
	return &Writer{sys: sys, Now: time.Now}
}

// BackupPath returns the sibling path an existing target is copied to.
func BackupPath(path string, now time.Time) string {
	return fmt.Sprintf("%s.backup.%s", path, now.Format(backupTimestampLayout))
}

// Apply writes every file in the set and returns the backup paths created.
func (w *Writer) Apply(set *Set) ([]string, error) {
	var backups []string
	for _, f := range set.Files {
		backup, err := w.writeFile(f)
		if err != nil {
			return backups, err
		}
		if backup != "" {
			backups = append(backups, backup)
		}
	}
	return backups, nil
}

func (w *Writer) writeFile(f File) (string, error) {
	backup := ""
	if w.sys.FileExists(f.Path) {
		backup = BackupPath(f.Path, w.Now())
		if err := w.sys.CopyFile(f.Path, backup); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", f.Path, err)
		}
	}

	if err := w.sys.WriteFile(f.Path, []byte(f.Content), os.FileMode(0o644)); err != nil {
		return backup, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}

	return backup, nil
}
