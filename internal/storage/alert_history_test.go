package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

func newTestHistory(t *testing.T) *SQLiteAlertHistory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alerts.db")
	s, err := NewSQLiteAlertHistory(zap.NewNop(), path, 24*time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAssignsIDAndTimestamp(t *testing.T) {
	s := newTestHistory(t)

	rec := &AlertRecord{
		AlertType: "doorOpen/noEntry",
		EventType: "noEntry",
		Priority:  model.PriorityLow,
		Text1:     "Pilot Unavailable",
		Text2:     "Door Open",
	}
	require.NoError(t, s.Store(context.Background(), rec))
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.StartedAt.IsZero())
}

func TestListNewestFirst(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, at := range []string{"overheat/softDisable", "doorOpen/noEntry", "startup/permanent"} {
		require.NoError(t, s.Store(ctx, &AlertRecord{
			AlertType: at,
			EventType: "noEntry",
			Priority:  model.PriorityLow,
			Text1:     "Pilot Unavailable",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "startup/permanent", records[0].AlertType)
	require.Equal(t, "overheat/softDisable", records[2].AlertType)

	records, err = s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestDeleteBefore(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	old := &AlertRecord{
		AlertType: "overheat/softDisable",
		EventType: "softDisable",
		Priority:  model.PriorityMid,
		Text1:     "TAKE CONTROL IMMEDIATELY",
		StartedAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := &AlertRecord{
		AlertType: "doorOpen/noEntry",
		EventType: "noEntry",
		Priority:  model.PriorityLow,
		Text1:     "Pilot Unavailable",
		StartedAt: time.Now(),
	}
	require.NoError(t, s.Store(ctx, old))
	require.NoError(t, s.Store(ctx, fresh))

	require.NoError(t, s.DeleteBefore(ctx, time.Now().Add(-24*time.Hour)))

	records, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "doorOpen/noEntry", records[0].AlertType)
}

func TestStoreDuplicateIDFails(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	rec := &AlertRecord{
		ID:        "fixed-id",
		AlertType: "doorOpen/noEntry",
		EventType: "noEntry",
		Text1:     "Pilot Unavailable",
	}
	require.NoError(t, s.Store(ctx, rec))
	require.Error(t, s.Store(ctx, &AlertRecord{
		ID:        "fixed-id",
		AlertType: "doorOpen/noEntry",
		EventType: "noEntry",
		Text1:     "Pilot Unavailable",
	}))
}

func TestRetentionJobSchedules(t *testing.T) {
	s := newTestHistory(t)
	require.NoError(t, s.StartRetention())
	require.NoError(t, s.Close())
}
