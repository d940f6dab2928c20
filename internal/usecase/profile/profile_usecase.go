package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/google/uuid"
)

// QRGenerator renders content as an image data URL.
type QRGenerator interface {
	DataURL(content string) (string, error)
}

// BioGenerator suggests short bios. Backed by Gemini when configured.
type BioGenerator interface {
	GenerateBios(ctx context.Context, name, title string, skills []string) ([]string, error)
}

type Tracker interface {
	QRCodeGenerated(profileID string)
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	network     repository.NetworkStatus
	qr          QRGenerator
	bios        BioGenerator
	tracker     Tracker
	publicURL   string
	newID       func() string
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	network repository.NetworkStatus,
	qr QRGenerator,
	bios BioGenerator,
	tracker Tracker,
	publicURL string,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		network:     network,
		qr:          qr,
		bios:        bios,
		tracker:     tracker,
		publicURL:   strings.TrimSuffix(publicURL, "/"),
		newID:       uuid.NewString,
	}
}

// ShareURL is the public card page for a profile.
func (uc *ProfileUseCase) ShareURL(id string) string {
	return fmt.Sprintf("%s/card/%s", uc.publicURL, id)
}

// CreateProfile stores p under a new ID and returns it. The QR code points at
// the card page of the new ID unless the caller supplied one.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, p *domain.Profile) (string, error) {
	if p == nil {
		return "", domain.ErrInvalidInput
	}

	id := uc.newID()
	if p.QRCode == "" {
		qr, err := uc.qr.DataURL(uc.ShareURL(id))
		if err != nil {
			return "", fmt.Errorf("generate qr code: %w", err)
		}
		p.QRCode = qr
	}

	if err := uc.profileRepo.Create(ctx, id, p); err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	return id, nil
}

// SaveProfile creates or overwrites the profile at id.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, id string, p *domain.Profile) error {
	if strings.TrimSpace(id) == "" || p == nil {
		return domain.ErrInvalidInput
	}
	if err := uc.profileRepo.Save(ctx, id, p); err != nil {
		return fmt.Errorf("save profile %s: %w", id, err)
	}
	return nil
}

// GetProfile fails fast with domain.ErrOffline while the store is unreachable.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.network.Online() {
		return nil, domain.ErrOffline
	}

	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return p, nil
}

// GenerateQRCode renders the card page URL of id as a PNG data URL.
func (uc *ProfileUseCase) GenerateQRCode(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", domain.ErrInvalidInput
	}

	qr, err := uc.qr.DataURL(uc.ShareURL(id))
	if err != nil {
		return "", fmt.Errorf("generate qr code: %w", err)
	}
	uc.tracker.QRCodeGenerated(id)
	return qr, nil
}

// GenerateBioRequest represents request to generate bio suggestions
type GenerateBioRequest struct {
	Name   string   `json:"name" binding:"required"`
	Title  string   `json:"title" binding:"required"`
	Skills []string `json:"skills"`
}

// GenerateBio returns up to three bio suggestions.
func (uc *ProfileUseCase) GenerateBio(ctx context.Context, req *GenerateBioRequest) ([]string, error) {
	if uc.bios == nil {
		return nil, fmt.Errorf("bio generator: %w", domain.ErrNotInitialized)
	}
	bios, err := uc.bios.GenerateBios(ctx, req.Name, req.Title, req.Skills)
	if err != nil {
		return nil, fmt.Errorf("generate bio: %w", err)
	}
	return bios, nil
}
