package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/feb_ecommerce/internal/dbtest"
	"github.com/Skotchmaster/feb_ecommerce/internal/models"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
	"github.com/Skotchmaster/feb_ecommerce/internal/tokens"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

var testSecret = []byte("test-secret")

type sentEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []sentEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, sentEvent{Topic: topic, Key: key, Event: m})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type fixture struct {
	repo     *repo.GormRepo
	pub      *recordingPublisher
	auth     *AuthService
	products *ProductService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := &repo.GormRepo{DB: dbtest.New(t)}
	pub := &recordingPublisher{}
	auth := &AuthService{Repo: r, Tokens: tokens.NewIssuer(testSecret, time.Hour), Publisher: pub}
	return &fixture{
		repo:     r,
		pub:      pub,
		auth:     auth,
		products: &ProductService{Repo: r, Admins: auth, Publisher: pub},
	}
}

func (f *fixture) register(t *testing.T, email, password string, admin bool) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), transport.RegisterRequest{Email: email, Password: password})
	require.NoError(t, err)
	if admin {
		require.NoError(t, f.repo.DB.Model(u).Update("is_admin", true).Error)
		u.IsAdmin = true
	}
	return u
}

func (f *fixture) product(t *testing.T, owner *models.User, name string) *models.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), identityOf(owner.ID), transport.CreateProductRequest{Name: name})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

var errBroker = errors.New("broker down")
