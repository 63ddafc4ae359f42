package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Job{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fakePublisher struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (f *fakePublisher) PublishJob(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.ids = append(f.ids, id)
	return nil
}

type fakeSource struct{ err error }

func (f fakeSource) Notice(_ context.Context, kind string, id uint64) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return fmt.Sprintf("New %s #%d", kind, id), "body", nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, subject, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects = append(r.subjects, subject)
	return r.err
}

func TestQueue_EnqueueStoresAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	pub := &fakePublisher{}
	q := NewQueue(repo, pub)

	require.NoError(t, q.Enqueue(ctx, "lead", 42))
	require.Len(t, pub.ids, 1)
	assert.Len(t, pub.ids[0], 26)

	j, err := repo.GetJobByID(ctx, pub.ids[0])
	require.NoError(t, err)
	assert.Equal(t, JobQueued, j.Status)
	assert.Equal(t, "lead", j.Kind)
	assert.EqualValues(t, 42, j.RecordID)
}

func TestQueue_PublishFailureMarksFailedAndRequeue(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	pub := &fakePublisher{err: errors.New("broker down")}
	q := NewQueue(repo, pub)

	require.Error(t, q.Enqueue(ctx, "demo_request", 7))
	failed, err := repo.ListByStatus(ctx, JobFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.NotNil(t, failed[0].Error)
	assert.Contains(t, *failed[0].Error, "broker down")

	pub.err = nil
	n, err := q.Requeue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{failed[0].ID}, pub.ids)
}

func TestProcessor_Handle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	pub := &fakePublisher{}
	require.NoError(t, NewQueue(repo, pub).Enqueue(ctx, "lead", 1))
	id := pub.ids[0]

	n := &recordingNotifier{}
	p := NewProcessor(repo, fakeSource{}, n, nil)
	require.NoError(t, p.Handle(ctx, id))

	j, err := repo.GetJobByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, JobSucceeded, j.Status)
	assert.Equal(t, 1, j.Attempts)
	assert.Equal(t, []string{"New lead #1"}, n.subjects)

	// redelivery of a finished job is a no-op
	require.NoError(t, p.Handle(ctx, id))
	assert.Len(t, n.subjects, 1)
}

func TestProcessor_HandleFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	pub := &fakePublisher{}
	require.NoError(t, NewQueue(repo, pub).Enqueue(ctx, "lead", 1))
	id := pub.ids[0]

	p := NewProcessor(repo, fakeSource{}, &recordingNotifier{err: errors.New("smtp refused")}, nil)
	require.Error(t, p.Handle(ctx, id))

	j, err := repo.GetJobByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, JobFailed, j.Status)
	require.NotNil(t, j.Error)
	assert.Contains(t, *j.Error, "smtp refused")

	require.Error(t, NewProcessor(repo, fakeSource{}, &recordingNotifier{}, nil).Handle(ctx, "01MISSINGMISSINGMISSING000"))
}

func TestMulti_JoinsErrors(t *testing.T) {
	ok := &recordingNotifier{}
	bad := &recordingNotifier{err: errors.New("down")}
	err := Multi{bad, ok}.Notify(context.Background(), "s", "b")
	require.Error(t, err)
	assert.Equal(t, []string{"s"}, ok.subjects, "later notifiers still run")
}

func TestEmailNotifier_Message(t *testing.T) {
	var got struct {
		addr string
		from string
		to   []string
		msg  string
	}
	e := NewEmailNotifier("smtp.example.com", 587, "user", "pass", "site@nexvstar.in", "sales@nexvstar.in")
	e.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.from, got.to, got.msg = addr, from, to, string(msg)
		return nil
	}

	require.NoError(t, e.Notify(context.Background(), "New lead: Priya", "Name: Priya\nEmail: p@x.in"))
	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "site@nexvstar.in", got.from)
	assert.Equal(t, []string{"sales@nexvstar.in"}, got.to)
	assert.Contains(t, got.msg, "Subject: New lead: Priya\r\n")
	assert.True(t, strings.HasSuffix(got.msg, "Name: Priya\r\nEmail: p@x.in"))
}

func TestEmailNotifier_HeaderAndLineBreaks(t *testing.T) {
	e := NewEmailNotifier("smtp.example.com", 25, "", "", "site@nexvstar.in", "sales@nexvstar.in")

	msg := string(e.message("New lead: Priya\rBcc: x@evil.in\r\nX: y", "a\r\nb\rc\nd"))
	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, head, "Subject: New lead: Priya Bcc: x@evil.in X: y\r\n")
	assert.NotContains(t, head, "\r\nBcc:")
	assert.Equal(t, "a\r\nb\r\nc\r\nd", body)

	msg = string(e.message("Demo request: Priya — GrowthWave", ""))
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	for _, line := range strings.Split(msg, "\r\n") {
		if strings.HasPrefix(line, "Subject: ") {
			for _, r := range line {
				assert.Less(t, r, rune(128), "subject is 7-bit after encoding")
			}
		}
	}
}

type fakeSender struct {
	params *bot.SendMessageParams
}

func (f *fakeSender) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.params = p
	return &models.Message{}, nil
}

func TestTelegramNotifier(t *testing.T) {
	s := &fakeSender{}
	tg := &TelegramNotifier{sender: s, chatID: -100123}
	require.NoError(t, tg.Notify(context.Background(), "New demo request", strings.Repeat("x", 5000)))
	require.NotNil(t, s.params)
	assert.Equal(t, int64(-100123), s.params.ChatID)
	assert.True(t, strings.HasPrefix(s.params.Text, "🔔 New demo request\n\n"))
	assert.LessOrEqual(t, len([]rune(s.params.Text)), MaxTelegramLen)
}
