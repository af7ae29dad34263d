package identity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch/internal/app"
	"github.com/devmatch/devmatch/internal/auth"
	svcErr "github.com/devmatch/devmatch/internal/errors"
	"github.com/devmatch/devmatch/internal/repository"
	"github.com/devmatch/devmatch/internal/server"
	"github.com/devmatch/devmatch/internal/validate"
)

// Registrar ties the identity service into the HTTP router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the identity service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the identity routes. Signup/login/logout are public; the
// profile routes run behind the auth middleware.
func (reg *Registrar) Register(r *gin.Engine) {
	svc := NewService(reg.appCtx)
	authed := auth.Middleware(reg.appCtx.JWT, repository.NewUserRepository(reg.appCtx.DB), reg.appCtx.Logger)

	r.POST("/signup", svc.handleSignup)
	r.POST("/login", svc.handleLogin)
	r.POST("/logout", svc.handleLogout)

	profile := r.Group("/profile", authed)
	profile.GET("/view", svc.handleProfileView)
	profile.PUT("/edit", svc.handleProfileEdit)
	profile.PUT("/password", svc.handlePasswordChange)
}

func (s *Service) handleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Err(c, svcErr.Validation("Invalid request body"))
		return
	}

	user, err := s.Signup(c.Request.Context(), req)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, "User signed up", user.Public())
}

func (s *Service) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Err(c, svcErr.Validation("Invalid request body"))
		return
	}

	user, token, err := s.Login(c.Request.Context(), req)
	if err != nil {
		server.Err(c, err)
		return
	}

	auth.SetTokenCookie(c, token, int(s.appCtx.JWT.TTL/time.Second))
	server.OK(c, "Login successful", user)
}

func (s *Service) handleLogout(c *gin.Context) {
	auth.ClearTokenCookie(c)
	server.OK(c, "User logged out successfully", nil)
}

func (s *Service) handleProfileView(c *gin.Context) {
	user := auth.CurrentUser(c)
	server.OK(c, "Profile fetched", user)
}

func (s *Service) handleProfileEdit(c *gin.Context) {
	// Strict decode: any key outside the whitelist struct fails the whole
	// update, matching the all-or-nothing contract.
	var upd validate.ProfileUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		server.Err(c, svcErr.InvalidUpdate("Invalid data"))
		return
	}

	user := auth.CurrentUser(c)
	updated, err := s.EditProfile(c.Request.Context(), user, upd)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, fmt.Sprintf("%s, Profile updated successfully", updated.FirstName), updated)
}

func (s *Service) handlePasswordChange(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Err(c, svcErr.Validation("Invalid request body"))
		return
	}

	user := auth.CurrentUser(c)
	if err := s.ChangePassword(c.Request.Context(), user, req); err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, "Password updated successfully", nil)
}
