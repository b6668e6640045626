package handler

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/pkg/util"
	"ThreadFarm/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	threadSvc service.ThreadService
}

func NewThreadHandler(threadSvc service.ThreadService) *ThreadHandler {
	return &ThreadHandler{
		threadSvc: threadSvc,
	}
}

func (s *ThreadHandler) ListThreads(c *gin.Context) {
	userID := c.GetUint64("user_id")
	threads, err := s.threadSvc.ListThreads(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"threads": threads})
}

func (s *ThreadHandler) GetThread(c *gin.Context) {
	userID := c.GetUint64("user_id")
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	thread, err := s.threadSvc.GetThread(c.Request.Context(), userID, threadID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"thread": thread})
}

func (s *ThreadHandler) CreateThread(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.ThreadCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	thread, err := s.threadSvc.CreateThread(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"thread": thread})
}

func (s *ThreadHandler) UpdateThread(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var updateDTO dto.ThreadUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO.Updates); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	thread, err := s.threadSvc.UpdateThread(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"thread": thread})
}

func (s *ThreadHandler) DeleteThread(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var deleteDTO dto.ThreadDeleteDTO
	err := c.ShouldBind(&deleteDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.threadSvc.DeleteThread(c.Request.Context(), userID, deleteDTO.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}
