package delivery

import (
	"errors"
	"net/http"
	"strings"

	"taskpro-backend/internal/apperror"
	authdto "taskpro-backend/internal/auth/dto"
	"taskpro-backend/internal/auth/usecase"
	"taskpro-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidBody  = apperror.BadRequest("Invalid request body")
	errFileTooLarge = apperror.BadRequest("File is too large")
)

// AuthHandler handles authentication and profile HTTP requests
type AuthHandler struct {
	authUsecase   usecase.AuthUsecase
	maxUploadSize int64
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, maxUploadSize int64) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		maxUploadSize: maxUploadSize,
	}
}

// Register creates an account and signs it in
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken rotates the token pair
// POST /api/auth/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout forgets the stored refresh token. A missing or unreadable body is
// treated as a logout without a token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authUsecase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: usecase.MsgLoggedOut})
}

// ForgotPassword
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: usecase.MsgForgotPasswordSent})
}

// ResetPassword
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	resp, err := h.authUsecase.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile
// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authUsecase.GetProfile(c.Request.Context(), c.GetString(UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.UserResponse{User: user})
}

// UpdateProfile accepts multipart/form-data with an optional "avatar" file, or
// a JSON body without one.
// PATCH /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	req, err := h.bindProfile(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	defer req.Avatar.Close()

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), c.GetString(UserIDKey), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.UserResponse{User: user})
}

// RegisterDevice stores an FCM token for deadline reminders
// POST /api/auth/devices
func (h *AuthHandler) RegisterDevice(c *gin.Context) {
	var req authdto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("Device token is required").Wrap(err))
		return
	}

	if err := h.authUsecase.RegisterDevice(c.Request.Context(), c.GetString(UserIDKey), &req); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: "Device registered"})
}

// UnregisterDevice
// DELETE /api/auth/devices/:token
func (h *AuthHandler) UnregisterDevice(c *gin.Context) {
	if err := h.authUsecase.UnregisterDevice(c.Request.Context(), c.GetString(UserIDKey), c.Param("token")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: "Device unregistered"})
}

func (h *AuthHandler) bindProfile(c *gin.Context) (*authdto.UpdateProfileRequest, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body authdto.ProfilePatch
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, errInvalidBody.Wrap(err)
		}
		return &authdto.UpdateProfileRequest{Name: body.Name, Email: body.Email, Password: body.Password, Theme: body.Theme}, nil
	}

	req := &authdto.UpdateProfileRequest{
		Name:     formValue(c, "name"),
		Email:    formValue(c, "email"),
		Password: formValue(c, "password"),
		Theme:    formValue(c, "theme"),
	}

	upload, err := FormImage(c, "avatar", h.maxUploadSize)
	if err != nil {
		return nil, err
	}
	req.Avatar = upload
	return req, nil
}

// FormImage reads an optional multipart file. It returns (nil, nil) when the
// field is absent.
func FormImage(c *gin.Context, field string, maxSize int64) (*storage.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errInvalidBody.Wrap(err)
	}

	file, err := storage.FromMultipart(fh, maxSize)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return nil, errFileTooLarge
		}
		return nil, errInvalidBody.Wrap(err)
	}
	return file, nil
}

func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
