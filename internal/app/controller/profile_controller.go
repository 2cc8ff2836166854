package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/errors"
	"github.com/rmehra/billmitra-backend/internal/middleware"
)

type ProfileController struct {
	profileService service.ProfileService
	billService    service.BillService
}

func NewProfileController(profileService service.ProfileService, billService service.BillService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		billService:    billService,
	}
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

// GetProfile returns the stored restaurant profile
// GET /api/v1/profile
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"profile": ctrl.profileService.Get(c.Request.Context()),
	})
}

// UpdateProfile saves the restaurant profile and refreshes the current bill's
// header
// PUT /api/v1/profile
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	profile := model.RestaurantProfile{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
	}

	if err := ctrl.profileService.Update(c.Request.Context(), profile); err != nil {
		if stderrors.Is(err, service.ErrEmptyProfile) {
			errors.BadRequest(c, errors.ProfileEmpty, "Profile must have at least one field set")
			return
		}
		log.Error("Failed to save profile", err, map[string]interface{}{
			"name": req.Name,
		})
		errors.StorageError(c, "")
		return
	}

	ctrl.billService.SetProfile(profile)

	log.Info("Restaurant profile updated", map[string]interface{}{
		"name": req.Name,
	})
	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
	})
}
