package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recordkit/recordsvc/internal/users"
)

// UserHandler serves registration, login and favorites sync.
type UserHandler struct {
	svc *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register routes under /api
func (h *UserHandler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/register", h.SignUp)
	api.POST("/login", h.Login)
	api.POST("/sync", h.Sync)
	api.GET("/favorites/:username", h.Favorites)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration successful", "user": gin.H{"username": u.Username}})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": u.Public()})
}

type syncRequest struct {
	Username  string            `json:"username"`
	Favorites []json.RawMessage `json:"favorites"`
}

// Sync replaces the caller's favorites wholesale.
func (h *UserHandler) Sync(c *gin.Context) {
	var req syncRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.SyncFavorites(c.Request.Context(), req.Username, req.Favorites); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sync successful"})
}

func (h *UserHandler) Favorites(c *gin.Context) {
	fav, err := h.svc.Favorites(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": fav})
}
