package cardform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/usecase/upload"
	"github.com/go-playground/validator/v10"
)

const (
	SuccessMessage = "Profile created successfully!"
	FailureMessage = "Error creating profile. Please try again."
)

type Experience struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsCurrent   bool   `json:"isCurrent"`
}

func (e Experience) blank() bool {
	return e.JobTitle == "" && e.CompanyName == "" && e.StartDate == "" && e.EndDate == "" && !e.IsCurrent
}

// Period renders the stored period string.
func (e Experience) Period() string {
	if e.IsCurrent {
		return e.StartDate + " - Present"
	}
	return e.StartDate + " - " + e.EndDate
}

// Form is the card creation form as submitted by the visitor.
type Form struct {
	FullName        string `json:"fullName" validate:"required"`
	JobTitle        string `json:"jobTitle" validate:"required"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
	YearsExperience string `json:"yearsExperience"`

	Email            string `json:"email" validate:"required,looseemail"`
	Phone            string `json:"phone"`
	LinkedInProfile  string `json:"linkedinProfile"`
	PortfolioWebsite string `json:"portfolioWebsite"`

	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience" validate:"dive"`

	Photo *upload.Image `json:"-"`
}

// NewForm returns the initial editing state: one empty skill and one empty
// experience row.
func NewForm() *Form {
	return &Form{
		Skills:     []string{""},
		Experience: []Experience{{}},
	}
}

// Clean trims every text field and drops experience rows that were left
// completely empty.
func (f *Form) Clean() {
	for _, s := range []*string{
		&f.FullName, &f.JobTitle, &f.Location, &f.Bio, &f.YearsExperience,
		&f.Email, &f.Phone, &f.LinkedInProfile, &f.PortfolioWebsite,
	} {
		*s = strings.TrimSpace(*s)
	}
	for i := range f.Skills {
		f.Skills[i] = strings.TrimSpace(f.Skills[i])
	}

	rows := f.Experience[:0]
	for _, e := range f.Experience {
		e.JobTitle = strings.TrimSpace(e.JobTitle)
		e.CompanyName = strings.TrimSpace(e.CompanyName)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		if !e.blank() {
			rows = append(rows, e)
		}
	}
	f.Experience = rows
}

// Profile converts a valid form into a profile record.
func (f *Form) Profile(avatar string) *domain.Profile {
	expertise := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s != "" {
			expertise = append(expertise, s)
		}
	}

	experience := make([]domain.Experience, 0, len(f.Experience))
	for _, e := range f.Experience {
		experience = append(experience, domain.Experience{
			Role:    e.JobTitle,
			Company: e.CompanyName,
			Period:  e.Period(),
		})
	}

	if avatar == "" {
		avatar = domain.PlaceholderAvatar
	}

	return &domain.Profile{
		Name:       f.FullName,
		Title:      f.JobTitle,
		Location:   f.Location,
		Avatar:     avatar,
		Bio:        f.Bio,
		Expertise:  expertise,
		Experience: experience,
		Contact: domain.Contact{
			Email: f.Email,
			Phone: f.Phone,
		},
		Social: domain.Social{
			LinkedIn:  f.LinkedInProfile,
			Portfolio: f.PortfolioWebsite,
		},
	}
}

type ProfileCreator interface {
	CreateProfile(ctx context.Context, p *domain.Profile) (string, error)
	ShareURL(id string) string
}

type ImageUploader interface {
	Upload(ctx context.Context, img *upload.Image) (*upload.Result, error)
}

type Tracker interface {
	CardCreated(profileID string, hasAvatar bool, expertiseCount int)
}

type Result struct {
	ID      string
	URL     string
	Profile *domain.Profile
}

type CardFormUseCase struct {
	profiles ProfileCreator
	uploader ImageUploader
	tracker  Tracker
	validate *validator.Validate
}

func NewCardFormUseCase(profiles ProfileCreator, uploader ImageUploader, tracker Tracker) *CardFormUseCase {
	return &CardFormUseCase{
		profiles: profiles,
		uploader: uploader,
		tracker:  tracker,
		validate: newValidator(),
	}
}

// Validate cleans f and returns a *ValidationError when the form cannot be
// submitted.
func (uc *CardFormUseCase) Validate(f *Form) error {
	f.Clean()

	err := uc.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return toValidationError(verrs)
	}
	return err
}

// Submit validates f, uploads the photo when present and creates the card
// exactly once. Nothing is created when validation fails.
func (uc *CardFormUseCase) Submit(ctx context.Context, f *Form) (*Result, error) {
	if err := uc.Validate(f); err != nil {
		return nil, err
	}

	var avatar string
	if f.Photo != nil {
		res, err := uc.uploader.Upload(ctx, f.Photo)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		avatar = res.URL
	}

	profile := f.Profile(avatar)
	id, err := uc.profiles.CreateProfile(ctx, profile)
	if err != nil {
		return nil, err
	}

	uc.tracker.CardCreated(id, profile.HasAvatar(), len(profile.Expertise))

	return &Result{ID: id, URL: uc.profiles.ShareURL(id), Profile: profile}, nil
}
