package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/google/uuid"
)

// Хранилища в памяти, повторяющие поведение репозиториев

type memProfiles struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Profile
}

func newMemProfiles(profiles ...*model.Profile) *memProfiles {
	m := &memProfiles{byID: make(map[uuid.UUID]*model.Profile)}
	for _, p := range profiles {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProfiles) Create(_ context.Context, p *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, p.Email) {
			return repository.ErrAlreadyExists
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	m.byID[p.ID] = p
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memProfiles) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) GetByTelegramID(_ context.Context, telegramID int64) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.TelegramID != nil && *p.TelegramID == telegramID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[uuid.UUID]*model.Profile)
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *memProfiles) ListByRole(_ context.Context, role model.ProfileRole) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Profile
	for _, p := range m.byID {
		if p.Role == role {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *memProfiles) UpdateStatus(_ context.Context, id uuid.UUID, status model.ProfileStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (m *memProfiles) SetTelegramID(_ context.Context, id uuid.UUID, telegramID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.TelegramID != nil && *p.TelegramID == telegramID && p.ID != id {
			return repository.ErrAlreadyExists
		}
	}
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.TelegramID = &telegramID
	return nil
}

type memEnrollments struct {
	byID map[uuid.UUID]*model.Enrollment
}

func newMemEnrollments() *memEnrollments {
	return &memEnrollments{byID: make(map[uuid.UUID]*model.Enrollment)}
}

func (m *memEnrollments) Create(_ context.Context, e *model.Enrollment) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	m.byID[e.ID] = e
	return nil
}

func (m *memEnrollments) GetByID(_ context.Context, id uuid.UUID) (*model.Enrollment, error) {
	return m.byID[id], nil
}

func (m *memEnrollments) ListAll(context.Context) ([]*model.Enrollment, error) {
	result := make([]*model.Enrollment, 0, len(m.byID))
	for _, e := range m.byID {
		result = append(result, e)
	}
	return result, nil
}

func (m *memEnrollments) ListActiveBetween(_ context.Context, from, to time.Time) ([]*model.Enrollment, error) {
	var result []*model.Enrollment
	for _, e := range m.byID {
		if e.ActiveBetween(from, to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *memEnrollments) ListByProfile(_ context.Context, profileID uuid.UUID) ([]*model.Enrollment, error) {
	var result []*model.Enrollment
	for _, e := range m.byID {
		if (e.StudentID != nil && *e.StudentID == profileID) || (e.TutorID != nil && *e.TutorID == profileID) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *memEnrollments) Update(_ context.Context, e *model.Enrollment) error {
	if _, ok := m.byID[e.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[e.ID] = e
	return nil
}

func (m *memEnrollments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// memSessions соблюдает уникальность (student, tutor, date), как ограничение в БД
type memSessions struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Session
}

func newMemSessions(sessions ...*model.Session) *memSessions {
	m := &memSessions{byID: make(map[uuid.UUID]*model.Session)}
	for _, s := range sessions {
		m.byID[s.ID] = s
	}
	return m
}

func (m *memSessions) conflicts(id, studentID, tutorID uuid.UUID, date time.Time) bool {
	for _, s := range m.byID {
		if s.ID != id && s.StudentID == studentID && s.TutorID == tutorID && s.Date.Equal(date) {
			return true
		}
	}
	return false
}

func (m *memSessions) Create(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(uuid.Nil, s.StudentID, s.TutorID, s.Date) {
		return schedule.ErrDuplicateSession
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.byID[s.ID] = s
	return nil
}

func (m *memSessions) ListSessionRefs(context.Context) ([]model.SessionRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs := make([]model.SessionRef, 0, len(m.byID))
	for _, s := range m.byID {
		refs = append(refs, model.SessionRef{StudentID: s.StudentID, TutorID: s.TutorID, Date: s.Date})
	}
	return refs, nil
}

func (m *memSessions) Exists(_ context.Context, studentID, tutorID uuid.UUID, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflicts(uuid.Nil, studentID, tutorID, date), nil
}

func (m *memSessions) GetByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) ListBetween(_ context.Context, from, to time.Time) ([]*model.Session, error) {
	return m.filter(func(s *model.Session) bool {
		return !s.Date.Before(from) && !s.Date.After(to)
	}), nil
}

func (m *memSessions) ListByProfile(_ context.Context, profileID uuid.UUID, from time.Time) ([]*model.Session, error) {
	return m.filter(func(s *model.Session) bool {
		return (s.StudentID == profileID || s.TutorID == profileID) && !s.Date.Before(from)
	}), nil
}

func (m *memSessions) filter(keep func(*model.Session) bool) []*model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Session
	for _, s := range m.byID {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result
}

func (m *memSessions) UpdateDate(_ context.Context, id uuid.UUID, date, endsAt time.Time, status model.SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if m.conflicts(id, s.StudentID, s.TutorID, date) {
		return schedule.ErrDuplicateSession
	}
	s.Date, s.EndsAt, s.Status = date, endsAt, status
	return nil
}

func (m *memSessions) UpdateSummary(_ context.Context, id uuid.UUID, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Summary = summary
	return nil
}

func (m *memSessions) UpdateStatus(_ context.Context, id uuid.UUID, status model.SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	return nil
}

func (m *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memSessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memMeetings struct {
	byID map[uuid.UUID]*model.Meeting
}

func newMemMeetings() *memMeetings {
	return &memMeetings{byID: make(map[uuid.UUID]*model.Meeting)}
}

func (m *memMeetings) Create(_ context.Context, meeting *model.Meeting) error {
	meeting.ID = uuid.New()
	meeting.CreatedAt = time.Now()
	m.byID[meeting.ID] = meeting
	return nil
}

func (m *memMeetings) GetByID(_ context.Context, id uuid.UUID) (*model.Meeting, error) {
	return m.byID[id], nil
}

func (m *memMeetings) List(context.Context) ([]*model.Meeting, error) {
	var result []*model.Meeting
	for _, meeting := range m.byID {
		result = append(result, meeting)
	}
	return result, nil
}

func (m *memMeetings) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memNotifications struct {
	byID map[uuid.UUID]*model.Notification
}

func newMemNotifications() *memNotifications {
	return &memNotifications{byID: make(map[uuid.UUID]*model.Notification)}
}

func (m *memNotifications) Create(_ context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	m.byID[n.ID] = n
	return nil
}

func (m *memNotifications) GetByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	return m.byID[id], nil
}

func (m *memNotifications) ListByStatus(_ context.Context, status model.NotificationStatus) ([]*model.Notification, error) {
	var result []*model.Notification
	for _, n := range m.byID {
		if n.Status == status {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *memNotifications) ListAll(context.Context) ([]*model.Notification, error) {
	var result []*model.Notification
	for _, n := range m.byID {
		result = append(result, n)
	}
	return result, nil
}

func (m *memNotifications) UpdateStatus(_ context.Context, id uuid.UUID, status model.NotificationStatus) error {
	n, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.Status = status
	return nil
}

func newTestProfile(role model.ProfileRole, email string) *model.Profile {
	return &model.Profile{
		ID:        uuid.New(),
		Role:      role,
		FirstName: string(role),
		Email:     email,
		Status:    model.ProfileStatusActive,
	}
}
