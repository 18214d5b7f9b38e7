package handlers

import (
	"net/http"

	"finance-backend/internal/models"
	"finance-backend/internal/services"
	"finance-backend/internal/utils"

	pkgvalidator "finance-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TagHandler struct {
	tagService *services.TagService
	validator  *validator.Validate
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  pkgvalidator.GetValidator(),
	}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags(currentUserID(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req models.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(tagID, currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "tag updated", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := h.tagService.DeleteTag(tagID, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "tag deleted", nil)
}
