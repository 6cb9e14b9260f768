// Package user owns the local user directory and the active session.
package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

// MinPasswordLength is the weakest credential the directory accepts.
const MinPasswordLength = 6

var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no active session")
)

// Service holds the directory and at most one active session per device.
type Service struct {
	kv      storage.KV
	log     *zap.SugaredLogger
	users   map[string]model.User
	session *model.User
}

// NewService loads the stored directory (falling back to the demo seed)
// and any persisted session.
func NewService(ctx context.Context, kv storage.KV, log *zap.SugaredLogger) *Service {
	s := &Service{kv: kv, log: log}
	s.users = storage.Load(ctx, kv, storage.KeyUsers, map[string]model.User(nil), log)
	if s.users == nil {
		s.users = seedUsers()
	}
	s.session = storage.Load(ctx, kv, storage.KeySession, (*model.User)(nil), log)
	return s
}

// Login checks the credential against the directory entry and, on
// success, establishes and persists the session. The returned record
// never carries the credential field.
func (s *Service) Login(ctx context.Context, username, password string) (model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	session := u.Stripped()
	s.session = &session
	if err := storage.Save(ctx, s.kv, storage.KeySession, s.session); err != nil {
		return model.User{}, err
	}
	return session, nil
}

// Register validates and inserts a new staff entry, then immediately
// establishes it as the active session. Validation order matches the
// login form: duplicate, mismatch, weak.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword, fullName string) (model.User, error) {
	if _, exists := s.users[username]; exists {
		return model.User{}, ErrDuplicateUser
	}
	if password != confirmPassword {
		return model.User{}, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return model.User{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = username
	}
	u := model.User{
		Username: username,
		Name:     name,
		Role:     model.RoleStaff,
		Password: string(hash),
	}
	s.users[username] = u
	if err := storage.Save(ctx, s.kv, storage.KeyUsers, s.users); err != nil {
		return model.User{}, err
	}
	session := u.Stripped()
	s.session = &session
	if err := storage.Save(ctx, s.kv, storage.KeySession, s.session); err != nil {
		return model.User{}, err
	}
	return session, nil
}

// Logout clears the active session only; the directory persists.
func (s *Service) Logout(ctx context.Context) error {
	s.session = nil
	return s.kv.Delete(ctx, storage.KeySession)
}

// Current returns the active session, if any.
func (s *Service) Current() (model.User, bool) {
	if s.session == nil {
		return model.User{}, false
	}
	return *s.session, true
}

// Directory returns a copy of the full directory, credentials included.
// It feeds the backup payload; callers must not expose it.
func (s *Service) Directory() map[string]model.User {
	out := make(map[string]model.User, len(s.users))
	for k, v := range s.users {
		out[k] = v
	}
	return out
}

// Replace swaps in a restored directory and re-points the active session
// at its restored backing record when it still exists.
func (s *Service) Replace(ctx context.Context, users map[string]model.User) error {
	s.users = make(map[string]model.User, len(users))
	for k, v := range users {
		s.users[k] = v
	}
	if err := storage.Save(ctx, s.kv, storage.KeyUsers, s.users); err != nil {
		return err
	}
	if s.session != nil {
		if u, ok := s.users[s.session.Username]; ok {
			session := u.Stripped()
			s.session = &session
			return storage.Save(ctx, s.kv, storage.KeySession, s.session)
		}
	}
	return nil
}

// seedUsers builds the demo directory: one admin and one staff account,
// both with the demo password "123456".
func seedUsers() map[string]model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on cost bounds, which are fixed here.
		panic(err)
	}
	return map[string]model.User{
		"admin": {
			Username: "admin",
			Name:     "Quản Trị Viên",
			Role:     model.RoleAdmin,
			Password: string(hash),
		},
		"staff": {
			Username: "staff",
			Name:     "Nhân Viên Kho",
			Role:     model.RoleStaff,
			Password: string(hash),
		},
	}
}
