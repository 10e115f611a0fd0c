package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"tescilofisi-backend/config"
	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, cfg *config.Config, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{
		config: cfg,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimiter, handler.Login)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// supabaseAuthURL normalizes the project URL and appends an auth endpoint.
func (h *AuthHandler) supabaseAuthURL(path string) string {
	supabaseURL := h.config.SupabaseUrl
	if len(supabaseURL) > 0 && supabaseURL[len(supabaseURL)-1] == '/' {
		supabaseURL = supabaseURL[:len(supabaseURL)-1]
	}
	return supabaseURL + path
}

// Login godoc
// @Summary      Admin Login
// @Description  Login with email and password via Supabase. Only configured admin accounts are accepted.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("E-posta ve şifre zorunludur"))
		return
	}

	// The allowlist is checked before credentials ever reach Supabase; a
	// non-admin account gets the same 403 whether or not it exists.
	if !h.config.IsAdminEmail(req.Email) {
		logger.Log.Warn("login attempt by non-admin account", "email", req.Email, "ip", c.ClientIP())
		c.Error(apperror.Forbidden("Bu hesap yönetici paneline erişemez"))
		return
	}

	// Password grant: POST /auth/v1/token?grant_type=password
	loginURL := h.supabaseAuthURL("/auth/v1/token?grant_type=password")

	reqBody := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	}
	jsonBody, _ := json.Marshal(reqBody)

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), "POST", loginURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)

	// Forward Client IP and User Agent
	httpReq.Header.Set("X-Forwarded-For", c.ClientIP())
	httpReq.Header.Set("User-Agent", c.Request.UserAgent())

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		logger.Log.Error("supabase login request failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Giriş hizmeti şu anda kullanılamıyor", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		logger.Log.Warn("supabase login rejected", "status", resp.StatusCode, "email", req.Email)

		c.Error(apperror.Unauthorized("E-posta veya şifre hatalı"))
		return
	}

	var session struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		User         struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Giriş yanıtı çözümlenemedi", err))
		return
	}

	response.Success(c, http.StatusOK, "Giriş başarılı", gin.H{
		"token":         session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_in":    session.ExpiresIn,
		"user": gin.H{
			"id":    session.User.ID,
			"email": session.User.Email,
		},
	})
}

// Logout godoc
// @Summary      Admin Logout
// @Description  Revokes the Supabase session behind the presented token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logoutURL := h.supabaseAuthURL("/auth/v1/logout")

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), "POST", logoutURL, nil)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("Authorization", c.GetHeader("Authorization"))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		// The token expires on its own; a failed revoke is not fatal.
		logger.Log.Warn("supabase logout request failed", "error", err)
	} else {
		resp.Body.Close()
	}

	response.Success(c, http.StatusOK, "Çıkış yapıldı", nil)
}

// Me godoc
// @Summary      Current admin
// @Description  Returns the identity behind the presented token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))

	response.Success(c, http.StatusOK, "Oturum bilgileri", gin.H{
		"id":    userID,
		"email": email,
	})
}
