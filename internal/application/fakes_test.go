package application

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/mailer"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	err   error
	saves int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*entity.User{}} }

func (f *fakeUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, x := range f.byID {
		if x.Email == u.Email || x.MembershipID == u.MembershipID {
			return repo.ErrDuplicate
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.saves++
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.saves++
	return nil
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.find(func(u *entity.User) bool { return u.Email == email })
	if err == repo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetByMembershipID(_ context.Context, id string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.MembershipID == id })
}

func (f *fakeUsers) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakePending mimics the Redis store, including expiry by wall clock.
type fakePending struct {
	mu      sync.Mutex
	entries map[string]entity.PendingRegistration
	expired map[string]bool
	dropGet bool
}

func newFakePending() *fakePending {
	return &fakePending{entries: map[string]entity.PendingRegistration{}, expired: map[string]bool{}}
}

func (f *fakePending) Put(_ context.Context, email string, p entity.PendingRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[email] = p
	delete(f.expired, email)
	return nil
}

func (f *fakePending) Get(_ context.Context, email string) (*entity.PendingRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.entries[email]
	if !ok || f.expired[email] || f.dropGet {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (f *fakePending) ValidateCode(_ context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.entries[email]
	if !ok || f.expired[email] {
		return repo.ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(p.Code), []byte(code)) != 1 {
		return repo.ErrCodeMismatch
	}
	return nil
}

func (f *fakePending) Clear(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, email)
	return nil
}

func (f *fakePending) code(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[email].Code
}

type fakeSequences struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeSequences() *fakeSequences { return &fakeSequences{values: map[string]int64{}} }

func (f *fakeSequences) Next(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name]++
	return f.values[name], nil
}

func (f *fakeSequences) Peek(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name], nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{sessions: map[string]entity.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s entity.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.UserID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessions) SyncProfile(_ context.Context, userID, name, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[userID]; ok {
		s.Name, s.ProfileImageURL = name, imageURL
		f.sessions[userID] = s
	}
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, userID)
	return nil
}

// fakeHasher is reversible so tests stay fast; Matches counts calls.
type fakeHasher struct {
	mu      sync.Mutex
	matches int
}

func (h *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (h *fakeHasher) Matches(plain, hash string) bool {
	h.mu.Lock()
	h.matches++
	h.mu.Unlock()
	return hash == "hashed:"+plain
}

type statusErr struct {
	status int
	body   string
}

func (e statusErr) Error() string        { return "provider rejected" }
func (e statusErr) StatusCode() int      { return e.status }
func (e statusErr) ResponseBody() string { return e.body }

type fakeMail struct {
	mu   sync.Mutex
	sent []mailer.EmailJob
	// failFor makes sends to these templates fail.
	failFor map[string]error
}

func (m *fakeMail) Send(_ context.Context, job mailer.EmailJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor[job.Template]; err != nil {
		return err
	}
	if _, err := mailer.Resolve(job); err != nil {
		return err
	}
	m.sent = append(m.sent, job)
	return nil
}

func (m *fakeMail) templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, j := range m.sent {
		out = append(out, j.Template)
	}
	return out
}

func (m *fakeMail) last() mailer.EmailJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakeFiles struct {
	keys []string
	err  error
}

func (f *fakeFiles) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://files.example.com/" + key, nil
}

type fakeSheets struct {
	rows [][]any
	err  error
}

func (f *fakeSheets) AppendRow(_ context.Context, values []any) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, values)
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	indexed []string
}

func (f *fakeIndex) IndexUser(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, u.ID)
	return nil
}

func (f *fakeIndex) SearchUsers(_ context.Context, q string, _ int) ([]map[string]any, error) {
	return []map[string]any{{"name": strings.ToUpper(q)}}, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Insert(_ context.Context, e entity.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, e.Action)
	return nil
}

type fixture struct {
	svc      *Service
	users    *fakeUsers
	pending  *fakePending
	seq      *fakeSequences
	sessions *fakeSessions
	hasher   *fakeHasher
	mail     *fakeMail
	files    *fakeFiles
	index    *fakeIndex
	audit    *fakeAudit
	logs     *test.Hook
	codes    []string
}

func newFixture() *fixture {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	f := &fixture{
		users:    newFakeUsers(),
		pending:  newFakePending(),
		seq:      newFakeSequences(),
		sessions: newFakeSessions(),
		hasher:   &fakeHasher{},
		mail:     &fakeMail{failFor: map[string]error{}},
		files:    &fakeFiles{},
		index:    &fakeIndex{},
		audit:    &fakeAudit{},
		logs:     hook,
	}
	f.svc = &Service{
		Users:     f.users,
		Pending:   f.pending,
		Sequences: f.seq,
		Sessions:  f.sessions,
		Audit:     f.audit,
		Hasher:    f.hasher,
		Mail:      f.mail,
		Files:     f.files,
		Index:     f.index,
		JWT:       helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour),
		Logger:    log,
		Opts:      DefaultOptions(),
		GenerateCode: func() (string, error) {
			if len(f.codes) == 0 {
				return helpers.GenOTPCode()
			}
			c := f.codes[0]
			f.codes = f.codes[1:]
			return c, nil
		},
	}
	return f
}
