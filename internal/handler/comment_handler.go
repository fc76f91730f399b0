package handler

import (
	"net/http"

	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/service"
	"anoa.com/yamdbreview/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.commentService.Create(c.Request.Context(), userID, titleID, reviewID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.commentService.ListByReview(c.Request.Context(), titleID, reviewID, bindPageFilter(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	commentID, err := parseUUIDParam(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	commentID, err := parseUUIDParam(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.commentService.Update(c.Request.Context(), userID, titleID, reviewID, commentID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	titleID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	commentID, err := parseUUIDParam(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, titleID, reviewID, commentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseReviewPath(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	titleID, err := parseUUIDParam(c, "title_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	reviewID, err := parseUUIDParam(c, "review_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return titleID, reviewID, nil
}
