package handler

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// WizardHandler 创作向导的接口层。所有接口都作用于当前用户的会话
type WizardHandler struct {
	wizardSvc service.WizardService
}

func NewWizardHandler(wizardSvc service.WizardService) *WizardHandler {
	return &WizardHandler{
		wizardSvc: wizardSvc,
	}
}

func (s *WizardHandler) Start(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Start(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Get(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Advance(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Advance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Back(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Back(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) SetSource(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var sourceDTO dto.WizardSourceDTO
	if err := c.ShouldBind(&sourceDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.SetSource(c.Request.Context(), userID, &sourceDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Transcribe(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Transcribe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) SetTranscript(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var transcriptDTO dto.WizardTranscriptDTO
	if err := c.ShouldBind(&transcriptDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.SetTranscript(c.Request.Context(), userID, &transcriptDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) SetSettings(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var settingsDTO dto.WizardSettingsDTO
	if err := c.ShouldBind(&settingsDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.SetSettings(c.Request.Context(), userID, &settingsDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Generate(c *gin.Context) {
	userID := c.GetUint64("user_id")
	state, err := s.wizardSvc.Generate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) EditPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var editDTO dto.WizardPostEditDTO
	if err = c.ShouldBind(&editDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.EditPost(c.Request.Context(), userID, index, &editDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) MovePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var moveDTO dto.WizardMoveDTO
	if err = c.ShouldBind(&moveDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.MovePost(c.Request.Context(), userID, index, &moveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) AttachImage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var imageDTO dto.WizardImageDTO
	if err = c.ShouldBind(&imageDTO); err != nil {
		response.Error(c, err)
		return
	}
	state, err := s.wizardSvc.AttachImage(c.Request.Context(), userID, index, &imageDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) SaveDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	draft, err := s.wizardSvc.SaveDraft(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"draft": draft})
}

func (s *WizardHandler) Resume(c *gin.Context) {
	userID := c.GetUint64("user_id")
	draftID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	state, err := s.wizardSvc.Resume(c.Request.Context(), userID, draftID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"wizard": state})
}

func (s *WizardHandler) Publish(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var publishDTO dto.WizardPublishDTO
	if err := c.ShouldBind(&publishDTO); err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.wizardSvc.Publish(c.Request.Context(), userID, &publishDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WizardHandler) Discard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.wizardSvc.Discard(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}
