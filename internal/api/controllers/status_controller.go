package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

const welcomeMessage = "WanderLust AI Travel Planner API"

type StatusController struct {
	statusService services.StatusServiceInterface
}

func NewStatusController(statusService services.StatusServiceInterface) *StatusController {
	return &StatusController{
		statusService: statusService,
	}
}

// Root godoc
// @Summary API welcome message
// @Tags Status
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/ [get]
func (sc *StatusController) Root(c *gin.Context) {
	utils.RespondSuccess(c, nil, welcomeMessage)
}

// CreateStatusCheck godoc
// @Summary Record a client status check
// @Tags Status
// @Accept json
// @Produce json
// @Param request body request_models.StatusCheckRequest true "Client name"
// @Success 200 {object} utils.APIResponse{data=response_models.StatusCheck}
// @Failure 400 {object} utils.APIResponse
// @Router /api/status [post]
func (sc *StatusController) CreateStatusCheck(c *gin.Context) {
	var req request_models.StatusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	check, err := sc.statusService.CreateStatusCheck(c.Request.Context(), req.ClientName)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, check, "Status check recorded")
}

// ListStatusChecks godoc
// @Summary List status checks
// @Tags Status
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.StatusCheck}
// @Router /api/status [get]
func (sc *StatusController) ListStatusChecks(c *gin.Context) {
	checks, err := sc.statusService.ListStatusChecks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checks, "Fetched status checks successfully")
}

func (sc *StatusController) Healthz(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
}
