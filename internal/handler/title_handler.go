package handler

import (
	"net/http"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/service"
	"anoa.com/yamdbreview/pkg/response"
	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{
		titleService: titleService,
	}
}

func (h *TitleHandler) Create(c *gin.Context) {
	var input dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.titleService.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *TitleHandler) List(c *gin.Context) {
	var filter dto.TitleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.titleService.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TitleHandler) Get(c *gin.Context) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.titleService.Get(c.Request.Context(), titleID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TitleHandler) Update(c *gin.Context) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.titleService.Update(c.Request.Context(), titleID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), titleID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
