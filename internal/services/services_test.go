package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/repositories/repotest"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeImages struct {
	mu      sync.Mutex
	folders []string
}

func (f *fakeImages) Upload(_ context.Context, ownerID uuid.UUID, folder string, img Image) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folder)
	return "https://img.test/" + folder + "/" + ownerID.String() + "/" + img.Filename, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []*models.Notification
	err    error
}

func (f *fakePusher) Push(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, n)
	return f.err
}

type env struct {
	svc    *Services
	repos  *repositories.Repositories
	images *fakeImages
	pusher *fakePusher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repos := repositories.New(repotest.NewDB(t))
	tokens, err := NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	e := &env{repos: repos, images: &fakeImages{}, pusher: &fakePusher{}}
	e.svc = New(Deps{
		Repos:    repos,
		Tokens:   tokens,
		Images:   e.images,
		Pusher:   e.pusher,
		Logger:   zap.NewNop(),
		HashCost: bcrypt.MinCost,
	})
	return e
}

// signUp registers a user with password "password1" and returns its id
func (e *env) signUp(t *testing.T, username string, dept models.Department) uuid.UUID {
	t.Helper()
	id, err := e.svc.Auth.SignUp(context.Background(), models.SignupRequest{
		Username:        username,
		Email:           username + "@campus.edu",
		Password:        "password1",
		ConfirmPassword: "password1",
		Firstname:       username,
		Lastname:        "Test",
		Department:      dept.Label(),
	})
	require.NoError(t, err)
	return id
}

func as(id uuid.UUID) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: id})
}

func anonymous() context.Context { return context.Background() }

func (e *env) notificationsOf(t *testing.T, id uuid.UUID) []models.Notification {
	t.Helper()
	rows, err := e.repos.Notifications.GetByRecipientID(context.Background(), id)
	require.NoError(t, err)
	return rows
}

var errPushDown = errors.New("push unavailable")

func uuidOfDeletedUser() uuid.UUID { return uuid.New() }
