package journal

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/lcapgen/db"
	"github.com/teranos/lcapgen/errors"
	dbtest "github.com/teranos/lcapgen/internal/testing"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	conn := dbtest.CreateTestDB(t)
	require.NoError(t, db.Migrate(conn, nil))
	return New(conn, zaptest.NewLogger(t).Sugar())
}

// clock returns a now func that advances one second per call
func clock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestJournal_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	j.now = clock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	id, err := j.BeginRun(ctx, RunInfo{Framework: "vue2", Input: "bin/components.json", Root: "/work"})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	require.NoError(t, j.RecordComponent(ctx, id, Entry{
		Name: "lcap_foo", CompName: "LcapFoo", TagName: "lcap-foo",
		Folder: "/work/src/components/lcap-foo", Status: ComponentGenerated, Registered: true, DurationMS: 12,
	}))
	require.NoError(t, j.RecordComponent(ctx, id, Entry{
		Name: "lcap_bar", Status: ComponentFailed, Error: "template not found",
	}))
	require.NoError(t, j.FinishRun(ctx, id, Summary{Total: 2, Succeeded: 1, Failed: 1}))

	runs, err := j.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, StatusCompleted, r.Status)
	assert.Equal(t, TriggerGenerate, r.Trigger)
	assert.Equal(t, "vue2", r.Framework)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 1, 0, time.UTC), r.StartedAt)
	require.NotNil(t, r.FinishedAt)
	assert.True(t, r.FinishedAt.After(r.StartedAt))

	entries, err := j.Entries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "lcap_foo", entries[0].Name)
	assert.True(t, entries[0].Registered)
	assert.Equal(t, int64(12), entries[0].DurationMS)
	assert.Equal(t, ComponentFailed, entries[1].Status)
	assert.Equal(t, "template not found", entries[1].Error)
}

func TestJournal_ListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	j.now = clock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := j.BeginRun(ctx, RunInfo{Framework: "vue2", Input: "in.json", Root: ".", Trigger: TriggerWatch})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := j.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, StatusRunning, runs[0].Status)
	assert.Nil(t, runs[0].FinishedAt)
	assert.Equal(t, TriggerWatch, runs[0].Trigger)

	all, err := j.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJournal_FinishUnknownRun(t *testing.T) {
	j := newTestJournal(t)

	err := j.FinishRun(context.Background(), "missing", Summary{Status: StatusInterrupted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run missing not found")
}

func TestJournal_ComponentRequiresRun(t *testing.T) {
	j := newTestJournal(t)

	err := j.RecordComponent(context.Background(), "no-such-run", Entry{Name: "x", Status: ComponentGenerated})
	require.Error(t, err, "foreign key should reject orphan components")
}

func TestJournal_OpenCreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/.lcapgen/history.db"

	j, err := Open(path, nil)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.BeginRun(context.Background(), RunInfo{Framework: "vue2", Input: "a", Root: "b"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestJournal_InsertFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("disk I/O error"))

	j := New(conn, nil)
	_, err = j.BeginRun(context.Background(), RunInfo{Framework: "vue2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record run start")
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_ClosedDatabase(t *testing.T) {
	j := newTestJournal(t)
	require.NoError(t, j.Close())

	_, err := j.BeginRun(context.Background(), RunInfo{Framework: "vue2"})
	require.Error(t, err)
	assert.True(t, db.IsDatabaseClosed(err))
}
