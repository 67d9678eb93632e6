package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	events := NewEventService(db)
	backups := NewBackupService(db, events, t.TempDir())

	_, err := users.Register("alice", "pw1")
	require.NoError(t, err)

	backup, err := backups.CreateBackup()
	require.NoError(t, err)

	info, err := os.Stat(backup.Path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Equal(t, info.Size(), backup.SizeBytes)

	list, err := backups.ListBackups()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, backup.Name, list[0].Name)
}

func TestBackupService_ListEmptyDirectory(t *testing.T) {
	db := newTestDB(t)
	backups := NewBackupService(db, NewEventService(db), t.TempDir())

	list, err := backups.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, list)
}
