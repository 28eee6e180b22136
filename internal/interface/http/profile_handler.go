package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
	"github.com/invenlab/inventory-api/pkg/response"
	"github.com/invenlab/inventory-api/pkg/storage"
	"github.com/invenlab/inventory-api/pkg/validation"
)

type ProfileHandler struct {
	Profile *application.ProfileService
	Logger  *logrus.Logger
}

func NewProfileHandler(profile *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profile: profile, Logger: logger}
}

func (h *ProfileHandler) userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

func (h *ProfileHandler) respondUser(c *gin.Context, u *entity.User, err error, action string) {
	if err != nil {
		if err == application.ErrUserNotFound {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error(action + " failed")
		response.Error(c, http.StatusInternalServerError, action+" failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "", nil)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Profile.Get(c.Request.Context(), h.userID(c))
	h.respondUser(c, u, err, "get profile")
}

type basicInfoRequest struct {
	FullName  *string `json:"fullName" binding:"omitempty,min=2,max=120"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

// UpdateBasicInfo merges only the fields present in the payload.
func (h *ProfileHandler) UpdateBasicInfo(c *gin.Context) {
	var req basicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.BasicInfoUpdate{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"birthDate": "must match datetime format: 2006-01-02"})
			return
		}
		in.BirthDate = &t
	}
	u, err := h.Profile.UpdateBasicInfo(c.Request.Context(), h.userID(c), in)
	h.respondUser(c, u, err, "update profile")
}

type appearanceRequest struct {
	Theme          string `json:"theme" binding:"required,oneof=light dark auto"`
	PrimaryColor   string `json:"primaryColor" binding:"required,hexcolor7"`
	SecondaryColor string `json:"secondaryColor" binding:"required,hexcolor7"`
	FontFamily     string `json:"fontFamily" binding:"required"`
	FontSize       int    `json:"fontSize" binding:"required,gte=12,lte=24"`
	ContrastMode   string `json:"contrastMode" binding:"required,oneof=normal high"`
}

func (h *ProfileHandler) UpdateAppearance(c *gin.Context) {
	var req appearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdateAppearance(c.Request.Context(), h.userID(c), entity.Appearance{
		Theme:          req.Theme,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		FontFamily:     req.FontFamily,
		FontSize:       req.FontSize,
		ContrastMode:   req.ContrastMode,
	})
	h.respondUser(c, u, err, "update appearance")
}

type localeRequest struct {
	Language   string `json:"language" binding:"required,min=2,max=8"`
	Timezone   string `json:"timezone" binding:"required,timezone"`
	DateFormat string `json:"dateFormat" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
}

func (h *ProfileHandler) UpdateLocale(c *gin.Context) {
	var req localeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdateLocale(c.Request.Context(), h.userID(c), entity.Locale{
		Language:   req.Language,
		Timezone:   req.Timezone,
		DateFormat: req.DateFormat,
		Currency:   req.Currency,
	})
	h.respondUser(c, u, err, "update locale")
}

type notificationsRequest struct {
	Email      *bool `json:"email" binding:"required"`
	Products   *bool `json:"products" binding:"required"`
	Categories *bool `json:"categories" binding:"required"`
	Promotions *bool `json:"promotions" binding:"required"`
}

func (h *ProfileHandler) UpdateNotifications(c *gin.Context) {
	var req notificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdateNotifications(c.Request.Context(), h.userID(c), entity.Notifications{
		Email:      *req.Email,
		Products:   *req.Products,
		Categories: *req.Categories,
		Promotions: *req.Promotions,
	})
	h.respondUser(c, u, err, "update notifications")
}

type privacyRequest struct {
	PublicProfile *bool `json:"publicProfile" binding:"required"`
	ShowEmail     *bool `json:"showEmail" binding:"required"`
	ShowBirthDate *bool `json:"showBirthDate" binding:"required"`
}

func (h *ProfileHandler) UpdatePrivacy(c *gin.Context) {
	var req privacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdatePrivacy(c.Request.Context(), h.userID(c), entity.Privacy{
		PublicProfile: *req.PublicProfile,
		ShowEmail:     *req.ShowEmail,
		ShowBirthDate: *req.ShowBirthDate,
	})
	h.respondUser(c, u, err, "update privacy")
}

type accessibilityRequest struct {
	ReduceAnimations   *bool `json:"reduceAnimations" binding:"required"`
	ScreenReader       *bool `json:"screenReader" binding:"required"`
	KeyboardNavigation *bool `json:"keyboardNavigation" binding:"required"`
}

func (h *ProfileHandler) UpdateAccessibility(c *gin.Context) {
	var req accessibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdateAccessibility(c.Request.Context(), h.userID(c), entity.Accessibility{
		ReduceAnimations:   *req.ReduceAnimations,
		ScreenReader:       *req.ScreenReader,
		KeyboardNavigation: *req.KeyboardNavigation,
	})
	h.respondUser(c, u, err, "update accessibility")
}

type securityRequest struct {
	MultiSession *bool `json:"multiSession" binding:"required"`
	TwoFactor    *bool `json:"twoFactor" binding:"required"`
}

func (h *ProfileHandler) UpdateSecurity(c *gin.Context) {
	var req securityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Profile.UpdateSecurity(c.Request.Context(), h.userID(c), entity.Security{
		MultiSession: *req.MultiSession,
		TwoFactor:    *req.TwoFactor,
	})
	h.respondUser(c, u, err, "update security")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Profile.ChangePassword(c.Request.Context(), h.userID(c), req.CurrentPassword, req.NewPassword)
	switch err {
	case nil:
		response.Success(c, http.StatusOK, nil, "password changed", nil)
	case application.ErrWrongPassword:
		response.Error(c, http.StatusBadRequest, "current password does not match", nil)
	case application.ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "user not found", nil)
	default:
		h.Logger.WithError(err).Error("change password failed")
		response.Error(c, http.StatusInternalServerError, "change password failed", nil)
	}
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Profile.UploadPhoto(c.Request.Context(), h.userID(c), f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidExtension):
			response.Error(c, http.StatusBadRequest, "file extension not allowed", nil)
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "file exceeds 5 MiB", nil)
		case err == application.ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "user not found", nil)
		default:
			h.Logger.WithError(err).Error("upload profile photo failed")
			response.Error(c, http.StatusInternalServerError, "upload failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "photo uploaded", nil)
}

func (h *ProfileHandler) RemovePhoto(c *gin.Context) {
	u, err := h.Profile.RemovePhoto(c.Request.Context(), h.userID(c))
	h.respondUser(c, u, err, "remove photo")
}
