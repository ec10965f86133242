package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GenerateItinerary godoc
// @Summary Generate a travel itinerary
// @Description Ask the language model for a day-by-day plan and return the validated itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Trip parameters"
// @Success 200 {object} utils.APIResponse{data=response_models.Itinerary}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Failure 504 {object} utils.APIResponse
// @Router /api/generate-itinerary [post]
func (ic *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	itinerary, err := ic.itineraryService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// ListItineraries godoc
// @Summary List saved itineraries
// @Tags Itineraries
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.Itinerary}
// @Router /api/itineraries [get]
func (ic *ItineraryController) ListItineraries(c *gin.Context) {
	itineraries, err := ic.itineraryService.ListItineraries(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries, "Fetched itineraries successfully")
}

// GetItinerary godoc
// @Summary Get one saved itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse{data=response_models.Itinerary}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/itineraries/{id} [get]
func (ic *ItineraryController) GetItinerary(c *gin.Context) {
	itinerary, err := ic.itineraryService.GetItineraryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Fetched itinerary successfully")
}
