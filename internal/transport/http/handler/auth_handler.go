package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-list-api/internal/service"
	mdw "todo-list-api/internal/transport/http/middleware"
	resp "todo-list-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Register(in)
	if err != nil {
		h.fail(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Login(in)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if uid == "" {
		resp.Err(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	profile, err := h.svc.Profile(uid)
	if err != nil {
		h.fail(c, "profile", err)
		return
	}
	if profile == nil {
		resp.Err(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	if status, _ := resp.StatusOf(err); status == http.StatusInternalServerError {
		h.log.Error("auth "+op+" failed", zap.Error(err), zap.String("rid", c.GetString(mdw.KeyRequestID)))
	}
	resp.Fail(c, err)
}
