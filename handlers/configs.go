package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recordkit/recordsvc/internal/configs"
)

// ConfigHandler serves the key/value configuration API.
type ConfigHandler struct {
	svc *configs.Service
}

func NewConfigHandler(svc *configs.Service) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// Register mounts the client routes under /api and the admin routes under
// /admin/api. adminMW guards the admin group only.
func (h *ConfigHandler) Register(r gin.IRouter, adminMW ...gin.HandlerFunc) {
	r.GET("/api/config/:key", h.Get)
	r.GET("/api/configs", h.All)

	admin := r.Group("/admin/api", adminMW...)
	admin.GET("/configs", h.List)
	admin.POST("/configs", h.Put)
	admin.DELETE("/configs/:key", h.Delete)
}

func (h *ConfigHandler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// All returns the whole mapping in document order.
func (h *ConfigHandler) All(c *gin.Context) {
	doc, err := h.svc.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ConfigHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type putConfigRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Put creates or overwrites one entry.
func (h *ConfigHandler) Put(c *gin.Context) {
	var req putConfigRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.Put(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Success", "data": e})
}

func (h *ConfigHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
