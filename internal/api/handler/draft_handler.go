package handler

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/pkg/util"
	"ThreadFarm/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftSvc service.DraftService
}

func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftSvc: draftSvc,
	}
}

func (s *DraftHandler) ListDrafts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	drafts, err := s.draftSvc.ListDrafts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"drafts": drafts})
}

func (s *DraftHandler) GetDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	draftID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	draft, err := s.draftSvc.GetDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"draft": draft})
}

func (s *DraftHandler) CreateDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.DraftCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	draft, err := s.draftSvc.CreateDraft(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"draft": draft})
}

func (s *DraftHandler) UpdateDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var updateDTO dto.DraftUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO.Updates); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	draft, err := s.draftSvc.UpdateDraft(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"draft": draft})
}

func (s *DraftHandler) DeleteDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var deleteDTO dto.DraftDeleteDTO
	err := c.ShouldBind(&deleteDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.draftSvc.DeleteDraft(c.Request.Context(), userID, deleteDTO.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}
