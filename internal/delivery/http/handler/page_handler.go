package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/usecase/cardform"
	"github.com/glosscard/glosscard-backend/internal/usecase/dashboard"
	"github.com/glosscard/glosscard-backend/internal/usecase/payment"
	"github.com/glosscard/glosscard-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

// View states of the card and payment pages. Loading is the state a view
// starts in until its record has been fetched.
const (
	StateLoading  = "loading"
	StateError    = "error"
	StateNotFound = "not_found"
	StateLoaded   = "loaded"
)

const (
	noIDMessage     = "No profile ID provided"
	tooLargeMessage = "Your submission was too large and nothing was saved. Please fill in the form again with a smaller photo."
)

// PageTracker records page level analytics.
type PageTracker interface {
	EventLogger
	PageView(pageName, pagePath string)
	ProfileView(profileID, profileName string)
	Error(errorType, message string, fields map[string]any)
}

type CardView struct {
	State    string
	Message  string
	ID       string
	Profile  *domain.Profile
	ShareURL string
}

type PaymentView struct {
	State   string
	Message string
	ID      string
	Payment *domain.Payment
}

type FormView struct {
	Form    *cardform.Form
	Errors  map[string]string
	Alert   string
	Success bool
	CardID  string
	CardURL string
}

type DashboardView struct {
	View      string
	Known     bool
	Sidebar   []dashboard.SidebarItem
	Analytics dashboard.Analytics
	Cards     []dashboard.SampleCard
}

type DiscoverView struct {
	Query   string
	Talents []dashboard.Talent
}

type PageHandler struct {
	profileUseCase   *profile.ProfileUseCase
	paymentUseCase   *payment.PaymentUseCase
	cardFormUseCase  *cardform.CardFormUseCase
	dashboardUseCase *dashboard.DashboardUseCase
	tracker          PageTracker
	maxUploadBytes   int64
}

func NewPageHandler(
	profileUseCase *profile.ProfileUseCase,
	paymentUseCase *payment.PaymentUseCase,
	cardFormUseCase *cardform.CardFormUseCase,
	dashboardUseCase *dashboard.DashboardUseCase,
	tracker PageTracker,
	maxUploadBytes int64,
) *PageHandler {
	return &PageHandler{
		profileUseCase:   profileUseCase,
		paymentUseCase:   paymentUseCase,
		cardFormUseCase:  cardFormUseCase,
		dashboardUseCase: dashboardUseCase,
		tracker:          tracker,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (h *PageHandler) render(c *gin.Context, status int, name, title string, view any) {
	c.HTML(status, name, gin.H{
		"Title": title,
		"View":  view,
	})
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	h.tracker.PageView("landing", c.Request.URL.Path)
	h.render(c, http.StatusOK, "home.html", "Gloss Card", nil)
}

func (h *PageHandler) Login(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "Log in", nil)
}

func (h *PageHandler) Signup(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", "Sign up", nil)
}

// loadCard resolves a card view from its initial loading state.
func (h *PageHandler) loadCard(ctx context.Context, id string) (CardView, error) {
	view := CardView{State: StateLoading, ID: id}

	p, err := h.profileUseCase.GetProfile(ctx, id)
	switch {
	case err == nil:
		view.State = StateLoaded
		view.Profile = p
		view.ShareURL = h.profileUseCase.ShareURL(id)
	case errors.Is(err, domain.ErrProfileNotFound):
		view.State = StateNotFound
		view.Message = domain.UserMessage(err)
	case errors.Is(err, domain.ErrInvalidInput):
		view.State = StateError
		view.Message = noIDMessage
	default:
		view.State = StateError
		view.Message = domain.UserMessage(err)
	}
	return view, err
}

// Card handles GET /card/:id
func (h *PageHandler) Card(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	view, err := h.loadCard(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		if view.State == StateError {
			h.tracker.Error("profile_load", err.Error(), map[string]any{"profile_id": id})
		}
		h.render(c, statusFor(err), "card.html", "Card", view)
		return
	}

	h.tracker.ProfileView(id, view.Profile.Name)
	h.render(c, http.StatusOK, "card.html", view.Profile.Name, view)
}

func (h *PageHandler) loadPayment(ctx context.Context, id string) (PaymentView, error) {
	view := PaymentView{State: StateLoading, ID: id}

	p, err := h.paymentUseCase.GetPayment(ctx, id)
	switch {
	case err == nil:
		view.State = StateLoaded
		view.Payment = p
	case errors.Is(err, domain.ErrInvalidInput):
		view.State = StateError
		view.Message = noIDMessage
	default:
		// Missing payment data is reported as an error on this page.
		view.State = StateError
		view.Message = domain.UserMessage(err)
	}
	return view, err
}

// Payment handles GET /payments/:id
func (h *PageHandler) Payment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	view, err := h.loadPayment(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		h.render(c, statusFor(err), "payment.html", "Payment", view)
		return
	}

	h.render(c, http.StatusOK, "payment.html", view.Payment.WalletName, view)
}

// CreateCardForm handles GET /create-card
func (h *PageHandler) CreateCardForm(c *gin.Context) {
	h.tracker.PageView("create_card", c.Request.URL.Path)
	h.render(c, http.StatusOK, "create_card.html", "Create Your Card", FormView{
		Form:   cardform.NewForm(),
		Errors: map[string]string{},
	})
}

// SubmitCardForm handles POST /create-card. The add_skill and add_experience
// actions re-render the form with an extra empty row.
func (h *PageHandler) SubmitCardForm(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	// Past the body limit no field can be read back, so the form starts over.
	if bodyTooLarge(c) {
		_, msg := uploadError(domain.ErrFileTooLarge, h.maxUploadBytes)
		h.render(c, http.StatusRequestEntityTooLarge, "create_card.html", "Create Your Card", FormView{
			Form:   cardform.NewForm(),
			Errors: map[string]string{"profilePhoto": msg},
			Alert:  tooLargeMessage,
		})
		return
	}

	form := formFromRequest(c)
	view := FormView{Form: form, Errors: map[string]string{}}

	switch c.PostForm("action") {
	case "add_skill":
		form.Skills = append(form.Skills, "")
		h.render(c, http.StatusOK, "create_card.html", "Create Your Card", view)
		return
	case "add_experience":
		form.Experience = append(form.Experience, cardform.Experience{})
		h.render(c, http.StatusOK, "create_card.html", "Create Your Card", view)
		return
	}

	img, closeFile, err := formImage(c, "profilePhoto")
	switch {
	case err == nil:
		defer closeFile()
		form.Photo = img
	case !errors.Is(err, domain.ErrFileMissing):
		_, msg := uploadError(err, h.maxUploadBytes)
		view.Errors["profilePhoto"] = msg
		h.render(c, http.StatusBadRequest, "create_card.html", "Create Your Card", view)
		return
	}

	res, err := h.cardFormUseCase.Submit(c.Request.Context(), form)
	if err != nil {
		_ = c.Error(err)
		h.renderSubmitError(c, view, err)
		return
	}

	view.Success = true
	view.Alert = cardform.SuccessMessage
	view.CardID = res.ID
	view.CardURL = res.URL
	h.render(c, http.StatusCreated, "create_card.html", "Card created", view)
}

func (h *PageHandler) renderSubmitError(c *gin.Context, view FormView, err error) {
	var verr *cardform.ValidationError
	if errors.As(err, &verr) {
		view.Errors = verr.Errors
		h.render(c, http.StatusUnprocessableEntity, "create_card.html", "Create Your Card", view)
		return
	}

	if errors.Is(err, domain.ErrFileNotImage) || errors.Is(err, domain.ErrFileTooLarge) {
		_, msg := uploadError(err, h.maxUploadBytes)
		view.Errors["profilePhoto"] = msg
		h.render(c, http.StatusBadRequest, "create_card.html", "Create Your Card", view)
		return
	}

	h.tracker.Error("card_create", err.Error(), nil)
	view.Alert = cardform.FailureMessage
	h.render(c, statusFor(err), "create_card.html", "Create Your Card", view)
}

// bodyTooLarge parses the posted form and reports whether it hit the body
// limit.
func bodyTooLarge(c *gin.Context) bool {
	var err error
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		_, err = c.MultipartForm()
	} else {
		err = c.Request.ParseForm()
	}
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// formFromRequest reads the card form. Experience rows are posted as
// experience_{i}_{field} and read until the first missing index.
func formFromRequest(c *gin.Context) *cardform.Form {
	f := &cardform.Form{
		FullName:         c.PostForm("fullName"),
		JobTitle:         c.PostForm("jobTitle"),
		Location:         c.PostForm("location"),
		Bio:              c.PostForm("bio"),
		YearsExperience:  c.PostForm("yearsExperience"),
		Email:            c.PostForm("email"),
		Phone:            c.PostForm("phone"),
		LinkedInProfile:  c.PostForm("linkedinProfile"),
		PortfolioWebsite: c.PostForm("portfolioWebsite"),
		Skills:           c.PostFormArray("skills"),
	}

	for i := 0; ; i++ {
		prefix := "experience_" + strconv.Itoa(i) + "_"
		title, hasTitle := c.GetPostForm(prefix + "jobTitle")
		company, hasCompany := c.GetPostForm(prefix + "companyName")
		if !hasTitle && !hasCompany {
			break
		}
		f.Experience = append(f.Experience, cardform.Experience{
			JobTitle:    title,
			CompanyName: company,
			StartDate:   c.PostForm(prefix + "startDate"),
			EndDate:     c.PostForm(prefix + "endDate"),
			IsCurrent:   c.PostForm(prefix+"isCurrent") != "",
		})
	}

	if len(f.Skills) == 0 {
		f.Skills = []string{""}
	}
	return f
}

// Dashboard handles GET /dashboard?view=
func (h *PageHandler) Dashboard(c *gin.Context) {
	view, known := h.dashboardUseCase.ResolveView(c.Query("view"))
	h.tracker.PageView("dashboard_"+view, c.Request.URL.Path)

	status := http.StatusOK
	if !known {
		status = http.StatusNotFound
	}
	h.render(c, status, "dashboard.html", "Dashboard", DashboardView{
		View:      view,
		Known:     known,
		Sidebar:   h.dashboardUseCase.Sidebar(),
		Analytics: h.dashboardUseCase.Analytics(),
		Cards:     h.dashboardUseCase.Cards(),
	})
}

// Discover handles GET /discover?q=
func (h *PageHandler) Discover(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	talents := h.dashboardUseCase.FilterTalents(query)

	h.tracker.PageView("discover", c.Request.URL.Path)
	if query != "" {
		h.tracker.Log(domain.EventSearchPerformed, map[string]any{
			"search_term":  query,
			"result_count": len(talents),
		})
	}

	h.render(c, http.StatusOK, "discover.html", "Discover Talent", DiscoverView{
		Query:   query,
		Talents: talents,
	})
}

// Placeholder handles GET /api/placeholder/:width/:height, the default avatar
// of cards created without a photo.
func (h *PageHandler) Placeholder(c *gin.Context) {
	width := placeholderSize(c.Param("width"))
	height := placeholderSize(c.Param("height"))

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#e5e7eb"/>`+
		`<circle cx="50%%" cy="40%%" r="%d" fill="#9ca3af"/>`+
		`<rect x="20%%" y="65%%" width="60%%" height="25%%" rx="%d" fill="#9ca3af"/></svg>`,
		width, height, width, height, min(width, height)/5, min(width, height)/10)

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

func placeholderSize(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 120
	}
	if n > 1000 {
		return 1000
	}
	return n
}
