package handler

import (
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/usecase/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUseCase *dashboard.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUseCase: dashboardUseCase}
}

// DashboardResponse represents the dashboard sample content
type DashboardResponse struct {
	Sidebar   []dashboard.SidebarItem `json:"sidebar"`
	Analytics dashboard.Analytics     `json:"analytics"`
	Cards     []dashboard.SampleCard  `json:"cards"`
}

// GetDashboard handles GET /dashboard
// @Summary Dashboard sample data
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, DashboardResponse{
		Sidebar:   h.dashboardUseCase.Sidebar(),
		Analytics: h.dashboardUseCase.Analytics(),
		Cards:     h.dashboardUseCase.Cards(),
	})
}

// ListTalents handles GET /talents
// @Summary Search the sample talent list
// @Tags dashboard
// @Produce json
// @Param q query string false "Name, title or skill"
// @Success 200 {array} dashboard.Talent
// @Router /talents [get]
func (h *DashboardHandler) ListTalents(c *gin.Context) {
	talents := h.dashboardUseCase.FilterTalents(c.Query("q"))
	if talents == nil {
		talents = []dashboard.Talent{}
	}
	c.JSON(http.StatusOK, talents)
}
