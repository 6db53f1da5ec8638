package service_test

import (
	"context"
	"time"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"
)

// fakeStore — in-memory реализация repository.Store для тестов сервисов.
// mutations считает записывающие вызовы, чтобы проверять, что отказ
// модерации не оставляет частичных изменений.
type fakeStore struct {
	users     map[string]domain.User
	userOrder []string
	messages  []domain.Message
	nextID    int64

	mutations int
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]domain.User{}}
}

func (f *fakeStore) seedUser(name string, role domain.Role) {
	f.users[name] = domain.User{Name: name, PasswordHash: "x", Role: role}
	f.userOrder = append(f.userOrder, name)
}

func (f *fakeStore) AppendMessage(_ context.Context, name, text string) (*domain.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mutations++
	f.nextID++
	m := domain.Message{ID: f.nextID, Name: name, Text: text, CreatedAt: time.Now()}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeStore) ListMessages(context.Context) ([]domain.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]domain.Message(nil), f.messages...), nil
}

func (f *fakeStore) ClearMessages(context.Context) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mutations++
	f.messages = nil
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, name string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) CountUsers(context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.users)), nil
}

func (f *fakeStore) CreateUser(_ context.Context, u *domain.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[u.Name]; ok {
		return repository.ErrAlreadyExists
	}
	f.mutations++
	f.users[u.Name] = *u
	f.userOrder = append(f.userOrder, u.Name)
	return nil
}

func (f *fakeStore) SetUserRole(_ context.Context, name string, role domain.Role) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[name]
	if !ok {
		return repository.ErrNotFound
	}
	f.mutations++
	u.Role = role
	f.users[name] = u
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, name string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[name]; !ok {
		return repository.ErrNotFound
	}
	f.mutations++
	delete(f.users, name)
	return nil
}

func (f *fakeStore) ListMembers(context.Context) ([]domain.Member, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]domain.Member, 0, len(f.users))
	for _, name := range f.userOrder {
		if u, ok := f.users[name]; ok {
			out = append(out, domain.Member{Name: u.Name, Role: u.Role})
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }
