package monitoring

import (
	"testing"
	"time"

	"github.com/pcruz7/notebook-be/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackupService struct {
	calls chan struct{}
}

func (f *fakeBackupService) CreateBackup() (models.Backup, error) {
	f.calls <- struct{}{}
	return models.Backup{Name: "fake"}, nil
}

func (f *fakeBackupService) ListBackups() ([]models.Backup, error) {
	return nil, nil
}

func TestNewBackupScheduler_InvalidExpression(t *testing.T) {
	_, err := NewBackupScheduler(&fakeBackupService{}, "not a cron line")
	assert.Error(t, err)
}

func TestBackupScheduler_RunsWhenDue(t *testing.T) {
	fake := &fakeBackupService{calls: make(chan struct{}, 1)}
	s, err := NewBackupScheduler(fake, "* * * * *")
	require.NoError(t, err)

	s.nextRun = time.Now().Add(-time.Minute)
	s.runIfDue()

	select {
	case <-fake.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a backup to run")
	}

	assert.True(t, s.nextRun.After(time.Now().Add(-time.Second)))
}

func TestBackupScheduler_SkipsWhenNotDue(t *testing.T) {
	fake := &fakeBackupService{calls: make(chan struct{}, 1)}
	schedule, err := cron.ParseStandard("* * * * *")
	require.NoError(t, err)

	s := &BackupScheduler{backupSvc: fake, schedule: schedule, nextRun: time.Now().Add(time.Hour), done: make(chan bool)}
	s.runIfDue()

	select {
	case <-fake.calls:
		t.Fatal("backup ran ahead of schedule")
	case <-time.After(100 * time.Millisecond):
	}
}
