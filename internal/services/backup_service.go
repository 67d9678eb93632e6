package services

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pcruz7/notebook-be/internal/models"
)

const backupPrefix = "notebook_"

// BackupServiceProvider defines the interface for backup services.
type BackupServiceProvider interface {
	CreateBackup() (models.Backup, error)
	ListBackups() ([]models.Backup, error)
}

// BackupService snapshots the SQLite database into timestamped files.
type BackupService struct {
	db           *sql.DB
	eventService EventServiceProvider
	backupPath   string
}

// NewBackupService creates a new BackupService.
func NewBackupService(db *sql.DB, eventService EventServiceProvider, backupPath string) *BackupService {
	return &BackupService{
		db:           db,
		eventService: eventService,
		backupPath:   backupPath,
	}
}

// CreateBackup writes a consistent snapshot of the database using VACUUM INTO.
func (s *BackupService) CreateBackup() (models.Backup, error) {
	if err := os.MkdirAll(s.backupPath, 0755); err != nil {
		return models.Backup{}, fmt.Errorf("could not create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s%s.db", backupPrefix, time.Now().Format("20060102150405"))
	path := filepath.Join(s.backupPath, name)

	if _, err := s.db.Exec("VACUUM INTO ?", path); err != nil {
		return models.Backup{}, fmt.Errorf("could not snapshot database: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.Backup{}, err
	}

	if err := s.eventService.CreateEvent("backup.created", "info", "Database backup created: "+name, nil); err != nil {
		return models.Backup{}, err
	}

	return models.Backup{
		Name:      name,
		Path:      path,
		SizeBytes: info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// ListBackups returns the snapshots on disk, newest first.
func (s *BackupService) ListBackups() ([]models.Backup, error) {
	entries, err := os.ReadDir(s.backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []models.Backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		backups = append(backups, models.Backup{
			Name:      entry.Name(),
			Path:      filepath.Join(s.backupPath, entry.Name()),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}
