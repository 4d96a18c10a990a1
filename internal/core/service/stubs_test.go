package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Schools = slices.Clone(u.Schools)
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	c := cloneUser(u)
	c.ID = r.nextID
	r.nextID++
	r.users[c.ID] = c
	return cloneUser(c)
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email != "" && u.Email == email })
}

func (r *stubUserRepo) FindByCode(_ context.Context, code string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Code == code })
}

func (r *stubUserRepo) HasSchool(_ context.Context, userID int64, school string) (bool, error) {
	u, ok := r.users[userID]
	return ok && slices.Contains(u.Schools, school), nil
}

func (r *stubUserRepo) LastCode(_ context.Context) (string, error) {
	last := ""
	for _, u := range r.users {
		if u.Code > last {
			last = u.Code
		}
	}
	return last, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Code == u.Code || (u.Email != "" && existing.Email == u.Email) {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Role != "" {
		u.Role = upd.Role
	}
	if upd.Code != "" {
		u.Code = upd.Code
	}
	if upd.Schools != nil {
		add, remove := domain.DiffSchools(u.Schools, upd.Schools)
		kept := u.Schools[:0]
		for _, s := range u.Schools {
			if !slices.Contains(remove, s) {
				kept = append(kept, s)
			}
		}
		u.Schools = append(kept, add...)
		sort.Strings(u.Schools)
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, school string) ([]*domain.User, error) {
	out := make([]*domain.User, 0)
	for _, u := range r.users {
		if school == "" || slices.Contains(u.Schools, school) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubTeamRepo struct {
	teams    map[string]*domain.Team
	taken    []string
	hasPhoto map[int64]bool
	nextID   int64
}

func newStubTeamRepo(teams ...*domain.Team) *stubTeamRepo {
	r := &stubTeamRepo{teams: make(map[string]*domain.Team), hasPhoto: make(map[int64]bool), nextID: 1}
	for _, t := range teams {
		t.ID = r.nextID
		r.nextID++
		r.teams[t.Code] = t
	}
	return r
}

func (r *stubTeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	if _, ok := r.teams[t.Code]; ok || slices.Contains(r.taken, t.Code) {
		return nil, domain.ErrTeamCodeTaken
	}
	c := *t
	c.ID = r.nextID
	r.nextID++
	r.teams[c.Code] = &c
	out := c
	return &out, nil
}

func (r *stubTeamRepo) FindByCode(_ context.Context, code string) (*domain.Team, error) {
	t, ok := r.teams[code]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTeamRepo) byID(id int64) *domain.Team {
	for _, t := range r.teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *stubTeamRepo) Update(_ context.Context, id int64, name string, isActive *bool) (*domain.Team, error) {
	t := r.byID(id)
	if t == nil {
		return nil, domain.ErrTeamNotFound
	}
	if name != "" {
		t.Name = name
	}
	if isActive != nil {
		t.IsActive = *isActive
	}
	c := *t
	return &c, nil
}

func (r *stubTeamRepo) Delete(_ context.Context, id int64) error {
	t := r.byID(id)
	if t == nil {
		return domain.ErrTeamNotFound
	}
	if r.hasPhoto[id] {
		return domain.ErrTeamHasPhotos
	}
	delete(r.teams, t.Code)
	return nil
}

func (r *stubTeamRepo) List(_ context.Context) ([]*domain.Team, error) {
	out := make([]*domain.Team, 0, len(r.teams))
	for _, t := range r.teams {
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubTeamRepo) MissingCodes(_ context.Context, codes []string) ([]string, error) {
	var missing []string
	for _, c := range codes {
		if _, ok := r.teams[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

func (r *stubTeamRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.teams)), nil
}

type stubPhotoRepo struct {
	photos    map[int64]*domain.Photo
	nextID    int64
	createErr error
	lastList  ports.PhotoFilter
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{photos: make(map[int64]*domain.Photo), nextID: 1}
}

func (r *stubPhotoRepo) put(p *domain.Photo) *domain.Photo {
	c := *p
	c.ID = r.nextID
	r.nextID++
	r.photos[c.ID] = &c
	out := c
	return &out
}

func (r *stubPhotoRepo) Create(_ context.Context, p *domain.Photo) (*domain.Photo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.put(p), nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id int64) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubPhotoRepo) List(_ context.Context, f ports.PhotoFilter) ([]*domain.Photo, error) {
	r.lastList = f
	out := make([]*domain.Photo, 0)
	for _, p := range r.photos {
		if f.SchoolCode != "" && p.SchoolCode != f.SchoolCode {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Migrated != nil && p.Migrated != *f.Migrated {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubPhotoRepo) MarkApproved(_ context.Context, id, by int64, at time.Time, externalID string) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	if p.Status == domain.PhotoRejected {
		return nil, domain.ErrInvalidTransition
	}
	p.Status = domain.PhotoApproved
	p.ApprovedAt = &at
	p.ApprovedBy = &by
	if externalID != "" {
		p.Migrated = true
		p.ExternalID = externalID
	}
	c := *p
	return &c, nil
}

func (r *stubPhotoRepo) MarkRejected(_ context.Context, id int64) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	if p.Status == domain.PhotoApproved {
		return nil, domain.ErrInvalidTransition
	}
	p.Status = domain.PhotoRejected
	c := *p
	return &c, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.photos, id)
	return nil
}

func (r *stubPhotoRepo) Stats(_ context.Context) (*domain.Stats, error) {
	var s domain.Stats
	for _, p := range r.photos {
		s.TotalPhotos++
		s.StorageBytes += p.FileSize
		switch p.Status {
		case domain.PhotoPending:
			s.PendingPhotos++
		case domain.PhotoApproved:
			s.ApprovedPhotos++
		case domain.PhotoRejected:
			s.RejectedPhotos++
		}
		if p.Migrated {
			s.MigratedPhotos++
		}
	}
	return &s, nil
}

type stubStore struct {
	objects     map[string][]byte
	uploadErr   error
	downloadErr error
	removed     []string
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string][]byte)}
}

func (s *stubStore) Upload(_ context.Context, path string, body io.Reader, _ int64, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[path] = b
	return nil
}

func (s *stubStore) Download(_ context.Context, path string) (io.ReadCloser, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	b, ok := s.objects[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *stubStore) Remove(_ context.Context, paths ...string) error {
	for _, p := range paths {
		delete(s.objects, p)
		s.removed = append(s.removed, p)
	}
	return nil
}

func (s *stubStore) PublicURL(path string) string {
	return "https://storage.test/" + path
}

type stubMirror struct {
	uploads []ports.MirrorUpload
	bodies  [][]byte
	err     error
}

func (m *stubMirror) Upload(_ context.Context, in ports.MirrorUpload) (*ports.MirrorResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, _ := io.ReadAll(in.Body)
	m.uploads = append(m.uploads, in)
	m.bodies = append(m.bodies, b)
	return &ports.MirrorResult{FileID: "drive-file-1", WebViewLink: "https://drive.test/drive-file-1"}, nil
}

type stubLock struct {
	held     map[int64]string
	err      error
	released []int64
	issued   int
	// onAcquire runs after the lock is granted, before the caller continues.
	onAcquire func(id int64)
}

func newStubLock() *stubLock {
	return &stubLock{held: make(map[int64]string)}
}

func (l *stubLock) Acquire(_ context.Context, id int64) (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	if _, busy := l.held[id]; busy {
		return "", false, nil
	}
	l.issued++
	token := fmt.Sprintf("token-%d", l.issued)
	l.held[id] = token
	if l.onAcquire != nil {
		l.onAcquire(id)
	}
	return token, true, nil
}

func (l *stubLock) Release(_ context.Context, id int64, token string) error {
	if l.held[id] == token {
		delete(l.held, id)
	}
	l.released = append(l.released, id)
	return nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.PhotoEvent
}

func (p *stubPublisher) Publish(e domain.PhotoEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *stubPublisher) types() []domain.PhotoEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.PhotoEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type stubEventRepo struct {
	events []domain.PhotoEvent
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.PhotoEvent) error {
	r.events = append(r.events, *e)
	return nil
}

func (r *stubEventRepo) ListByPhoto(_ context.Context, id int64) ([]domain.PhotoEvent, error) {
	var out []domain.PhotoEvent
	for _, e := range r.events {
		if e.PhotoID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
