package handler

import (
	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/pkg/apperror"
	"anoa.com/yamdbreview/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}

// parseUUIDParam treats a malformed path id like a missing resource,
// matching the original API's 404 for unknown primary keys.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Wrap(apperror.ErrNotFound, name+" not found")
	}
	return id, nil
}

func bindPageFilter(c *gin.Context) dto.PageFilter {
	var filter dto.PageFilter
	_ = c.ShouldBindQuery(&filter)
	return filter
}
