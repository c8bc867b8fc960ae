package attendance

import (
	"net/http"
	"strconv"
	"strings"

	"go-academy/internal/shared/apperror"
	"go-academy/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorStaffID(c *gin.Context) string {
	staffID := c.GetString("staff_id")
	if staffID == "" {
		staffID = c.GetString("user_id_validated")
	}
	return staffID
}

func (h *Handler) CheckIn(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	staffID := actorStaffID(c)

	var req CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
			return
		}
	}

	resp, err := h.service.CheckIn(c.Request.Context(), tenantID, staffID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	staffID := actorStaffID(c)

	var req CheckOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
			return
		}
	}

	resp, err := h.service.CheckOut(c.Request.Context(), tenantID, staffID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := actorStaffID(c)
	role := strings.ToLower(strings.TrimSpace(c.GetString("role")))
	canReadAll := role == "admin" || role == "manager"

	resp, err := h.service.GetAll(c.Request.Context(), tenantID, actorID, canReadAll)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}
