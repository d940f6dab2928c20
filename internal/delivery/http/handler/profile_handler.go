package handler

import (
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfileResponse represents a created card
type CreateProfileResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// QRCodeResponse represents a generated QR code
type QRCodeResponse struct {
	QRCode string `json:"qrCode"`
	URL    string `json:"url"`
}

// BioSuggestionsResponse represents generated bio suggestions
type BioSuggestionsResponse struct {
	Bios []string `json:"bios"`
}

// GetProfile handles GET /profiles/:id
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileUseCase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreateProfile handles POST /profiles
// @Summary Create a profile
// @Description Store a full profile record under a new ID
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body domain.Profile true "Profile"
// @Success 201 {object} CreateProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	req.Normalize()

	id, err := h.profileUseCase.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateProfileResponse{
		ID:  id,
		URL: h.profileUseCase.ShareURL(id),
	})
}

// SaveProfile handles PUT /profiles/:id
// @Summary Create or overwrite a profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body domain.Profile true "Profile"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/{id} [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if err := h.profileUseCase.SaveProfile(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, &req)
}

// GetQRCode handles GET /profiles/:id/qrcode
// @Summary Generate the card page QR code
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} QRCodeResponse
// @Router /profiles/{id}/qrcode [get]
func (h *ProfileHandler) GetQRCode(c *gin.Context) {
	id := c.Param("id")

	qr, err := h.profileUseCase.GenerateQRCode(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, QRCodeResponse{
		QRCode: qr,
		URL:    h.profileUseCase.ShareURL(id),
	})
}

// GenerateBio handles POST /profiles/bio-suggestions
// @Summary Suggest short bios
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body profile.GenerateBioRequest true "Name, title and skills"
// @Success 200 {object} BioSuggestionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profiles/bio-suggestions [post]
func (h *ProfileHandler) GenerateBio(c *gin.Context) {
	var req profile.GenerateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	bios, err := h.profileUseCase.GenerateBio(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BioSuggestionsResponse{Bios: bios})
}
