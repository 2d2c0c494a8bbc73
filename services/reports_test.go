package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMail struct {
	to          []string
	subject     string
	body        string
	attachments []utils.Attachment
}

type fakeMailer struct {
	sent []recordedMail
}

func (m *fakeMailer) Send(to []string, subject, htmlBody string, attachments ...utils.Attachment) error {
	m.sent = append(m.sent, recordedMail{to: to, subject: subject, body: htmlBody, attachments: attachments})
	return nil
}

func TestSnapshotDayUpserts(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	ctx := context.Background()
	day := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)

	snapshot, report, err := SnapshotDay(ctx, db, day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", snapshot.Day)
	assert.Equal(t, 2, report.Stats.TotalOrders)
	assert.Equal(t, 56.0, report.Stats.TotalRevenue)

	var decoded DailyReport
	require.NoError(t, json.Unmarshal(snapshot.Payload, &decoded))
	assert.Equal(t, report.Stats, decoded.Stats)
	require.Len(t, decoded.Magazines, 2)

	_, _, err = SnapshotDay(ctx, db, day, time.UTC)
	require.NoError(t, err)

	reports, err := ListReports(ctx, db, 0)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestListReportsNewestFirst(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	ctx := context.Background()

	for _, d := range []int{4, 6, 5} {
		_, _, err := SnapshotDay(ctx, db, time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC), time.UTC)
		require.NoError(t, err)
	}

	reports, err := ListReports(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2024-03-06", reports[0].Day)
	assert.Equal(t, "2024-03-05", reports[1].Day)
}

func TestReportSchedulerRunStoresAndMails(t *testing.T) {
	db := testDB(t)
	seedOrders(t, db)
	Now = func() time.Time { return time.Date(2024, 3, 6, 7, 0, 0, 0, time.UTC) }

	mailer := &fakeMailer{}
	scheduler := &ReportScheduler{DB: db, Location: time.UTC, Mailer: mailer, To: []string{"boss@example.com"}}
	scheduler.Run()

	reports, err := ListReports(context.Background(), db, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "2024-03-05", reports[0].Day)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"boss@example.com"}, mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "2024-03-05")
	assert.Contains(t, mailer.sent[0].body, "Mega")
}

func TestReportSchedulerRejectsBadSpec(t *testing.T) {
	scheduler := &ReportScheduler{}
	assert.Error(t, scheduler.Start("not a cron spec"))

	require.NoError(t, scheduler.Start("0 0 6 * * *"))
	scheduler.Stop()
}
