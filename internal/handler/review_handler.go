package handler

import (
	"net/http"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/service"
	"anoa.com/yamdbreview/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.reviewService.Create(c.Request.Context(), userID, titleID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, bindPageFilter(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reviewID, err := parseUUIDParam(c, "review_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reviewID, err := parseUUIDParam(c, "review_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.reviewService.Update(c.Request.Context(), userID, titleID, reviewID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reviewID, err := parseUUIDParam(c, "review_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, titleID, reviewID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
