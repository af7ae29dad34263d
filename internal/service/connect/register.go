package connect

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devmatch/devmatch/internal/app"
	"github.com/devmatch/devmatch/internal/auth"
	svcErr "github.com/devmatch/devmatch/internal/errors"
	"github.com/devmatch/devmatch/internal/repository"
	"github.com/devmatch/devmatch/internal/server"
)

// Registrar ties the connect service into the HTTP router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the connect service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the request/feed/connections routes, all authenticated.
func (reg *Registrar) Register(r *gin.Engine) {
	svc := NewService(reg.appCtx)
	authed := auth.Middleware(reg.appCtx.JWT, repository.NewUserRepository(reg.appCtx.DB), reg.appCtx.Logger)

	request := r.Group("/request", authed)
	request.POST("/send/:status/:toUserId", svc.handleSend)
	request.POST("/review/:status/:requestId", svc.handleReview)

	user := r.Group("/user", authed)
	user.GET("/requests/received", svc.handleReceived)
	user.GET("/requests/received/count", svc.handleReceivedCount)
	user.GET("/connections", svc.handleConnections)
	user.GET("/feed", svc.handleFeed)
}

func (s *Service) handleSend(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	action := c.Param("status")

	targetID, err := strconv.ParseUint(c.Param("toUserId"), 10, 64)
	if err != nil {
		server.Err(c, svcErr.Validation("toUserId must be a valid id"))
		return
	}

	req, err := s.Send(c.Request.Context(), viewer, targetID, action)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, fmt.Sprintf("%s is %s to connect", viewer.FirstName, req.Status), req)
}

func (s *Service) handleReview(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	decision := c.Param("status")

	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 64)
	if err != nil {
		server.Err(c, svcErr.Validation("requestId must be a valid id"))
		return
	}

	req, err := s.Review(c.Request.Context(), viewer.ID, requestID, decision)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, fmt.Sprintf("Connection request %s", req.Status), req)
}

func (s *Service) handleReceived(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	reqs, err := s.ReceivedRequests(c.Request.Context(), viewer.ID)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, fmt.Sprintf("%d connection requests found", len(reqs)), reqs)
}

func (s *Service) handleReceivedCount(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	count, err := s.PendingCount(c.Request.Context(), viewer.ID)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, "Pending request count", gin.H{"count": count})
}

func (s *Service) handleConnections(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	conns, err := s.Connections(c.Request.Context(), viewer.ID)
	if err != nil {
		server.Err(c, err)
		return
	}
	server.OK(c, fmt.Sprintf("%d connections found", len(conns)), conns)
}

func (s *Service) handleFeed(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	feed, err := s.Feed(c.Request.Context(), viewer, page, limit)
	if err != nil {
		server.Err(c, err)
		return
	}
	// feed keeps the {data, hasMore} shape rather than the {message, data}
	// envelope
	c.JSON(http.StatusOK, feed)
}
