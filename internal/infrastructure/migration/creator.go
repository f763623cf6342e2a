package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a generated up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes a timestamped up/down migration pair into
// migrationsDir. The version prefix sorts lexicographically so
// golang-migrate applies files in creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")

	base := fmt.Sprintf("%s_%s", version, sanitizeName(name))
	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	up := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n-- Write your UP migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}

	down := fmt.Sprintf("-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n-- Write your DOWN migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.DownPath, []byte(down), 0644); err != nil {
		// Do not leave a one-sided pair behind.
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

// sanitizeName lowercases the name and collapses separators so it is safe
// in a file name.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if len(s) > 0 && s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs in a
// directory, derived from the .up.sql files. A missing directory is
// treated as empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0)
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok || seen[base] {
			continue
		}
		seen[base] = true
		migrations = append(migrations, base)
	}

	return migrations, nil
}
