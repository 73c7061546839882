package handlers

import (
	"log"
	"net/http"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/middleware"
	"tradeyard/internal/models"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignupRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	GSTIN       *string `json:"gstin"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user := &models.User{
		Email:       req.Email,
		Role:        req.Role,
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
		GSTIN:       req.GSTIN,
	}
	tokens, err := h.authService.Signup(c.Request().Context(), user, req.Password)
	if err != nil {
		log.Printf("Signup failed for %s: %v", common.SafeString(&req.Email), err)
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, tokens)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tokens)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		log.Printf("Logout failed: %v", err)
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SessionLogin authenticates with the same credentials as Login but answers
// with a session cookie instead of a token pair, for the cookie auth variant.
func (h *AuthHandler) SessionLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sessionID, user, err := h.authService.StartSession(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.HTTPError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(services.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) SessionLogout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no session cookie")
	}

	if err := h.authService.EndSession(c.Request().Context(), cookie.Value); err != nil {
		log.Printf("Session logout failed: %v", err)
		return common.HTTPError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	GSTIN       *string `json:"gstin"`
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.authService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return common.HTTPError(err)
	}

	user.CompanyName = req.CompanyName
	user.ContactName = req.ContactName
	user.Phone = req.Phone
	user.Address = req.Address
	user.GSTIN = req.GSTIN

	if err := h.authService.UpdateProfile(c.Request().Context(), user); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}
