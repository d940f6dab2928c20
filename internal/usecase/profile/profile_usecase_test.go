package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	profiles map[string]*domain.Profile
	creates  int
	gets     int
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeRepo) Create(_ context.Context, id string, p *domain.Profile) error {
	r.creates++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.profiles[id]; ok {
		return errors.New("duplicate id")
	}
	p.ID = id
	r.profiles[id] = p
	return nil
}

func (r *fakeRepo) Save(_ context.Context, id string, p *domain.Profile) error {
	if r.err != nil {
		return r.err
	}
	p.ID = id
	r.profiles[id] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.gets++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

type staticNetwork bool

func (n staticNetwork) Online() bool { return bool(n) }

type fakeQR struct{ contents []string }

func (q *fakeQR) DataURL(content string) (string, error) {
	q.contents = append(q.contents, content)
	return "data:image/png;base64,QR", nil
}

type fakeTracker struct{ generated []string }

func (t *fakeTracker) QRCodeGenerated(id string) { t.generated = append(t.generated, id) }

type fakeBios struct{ bios []string }

func (b fakeBios) GenerateBios(context.Context, string, string, []string) ([]string, error) {
	return b.bios, nil
}

func newTestUseCase(repo *fakeRepo, online bool) (*ProfileUseCase, *fakeQR, *fakeTracker) {
	qr, tracker := &fakeQR{}, &fakeTracker{}
	uc := NewProfileUseCase(repo, staticNetwork(online), qr, nil, tracker, "https://gloss.card/")
	uc.newID = func() string { return "card-1" }
	return uc, qr, tracker
}

func TestCreateProfile(t *testing.T) {
	repo := newFakeRepo()
	uc, qr, _ := newTestUseCase(repo, true)

	id, err := uc.CreateProfile(context.Background(), &domain.Profile{Name: "Jane Doe", Title: "Designer"})
	require.NoError(t, err)
	assert.Equal(t, "card-1", id)
	assert.Equal(t, 1, repo.creates)

	assert.Equal(t, []string{"https://gloss.card/card/card-1"}, qr.contents)
	assert.Equal(t, "data:image/png;base64,QR", repo.profiles["card-1"].QRCode)
}

func TestCreateProfileKeepsSuppliedQRCode(t *testing.T) {
	repo := newFakeRepo()
	uc, qr, _ := newTestUseCase(repo, true)

	_, err := uc.CreateProfile(context.Background(), &domain.Profile{Name: "Jane", QRCode: "custom"})
	require.NoError(t, err)
	assert.Empty(t, qr.contents)
	assert.Equal(t, "custom", repo.profiles["card-1"].QRCode)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := newFakeRepo()
		repo.profiles["abc"] = &domain.Profile{ID: "abc", Name: "Jane"}
		uc, _, _ := newTestUseCase(repo, true)

		p, err := uc.GetProfile(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		uc, _, _ := newTestUseCase(newFakeRepo(), true)

		p, err := uc.GetProfile(ctx, "missing")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		repo := newFakeRepo()
		uc, _, _ := newTestUseCase(repo, true)

		_, err := uc.GetProfile(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, repo.gets)
	})

	t.Run("offline fails before repository", func(t *testing.T) {
		repo := newFakeRepo()
		uc, _, _ := newTestUseCase(repo, false)

		_, err := uc.GetProfile(ctx, "abc")
		assert.ErrorIs(t, err, domain.ErrOffline)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.Zero(t, repo.gets)
	})

	t.Run("store errors keep their kind", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = domain.ErrPermissionDenied
		uc, _, _ := newTestUseCase(repo, true)

		_, err := uc.GetProfile(ctx, "abc")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestSaveProfile(t *testing.T) {
	repo := newFakeRepo()
	uc, _, _ := newTestUseCase(repo, true)

	require.NoError(t, uc.SaveProfile(context.Background(), "fixed", &domain.Profile{Name: "A"}))
	require.NoError(t, uc.SaveProfile(context.Background(), "fixed", &domain.Profile{Name: "B"}))
	assert.Equal(t, "B", repo.profiles["fixed"].Name)

	assert.ErrorIs(t, uc.SaveProfile(context.Background(), "", &domain.Profile{}), domain.ErrInvalidInput)
}

func TestGenerateQRCode(t *testing.T) {
	uc, qr, tracker := newTestUseCase(newFakeRepo(), true)

	got, err := uc.GenerateQRCode(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QR", got)
	assert.Equal(t, []string{"https://gloss.card/card/abc"}, qr.contents)
	assert.Equal(t, []string{"abc"}, tracker.generated)
}

func TestGenerateBio(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeRepo(), true)
	req := &GenerateBioRequest{Name: "Jane", Title: "Designer"}

	_, err := uc.GenerateBio(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	uc.bios = fakeBios{bios: []string{"I design."}}
	bios, err := uc.GenerateBio(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"I design."}, bios)
}
