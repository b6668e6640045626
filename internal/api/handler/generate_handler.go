package handler

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/service"

	"github.com/gin-gonic/gin"
)

type GenerateHandler struct {
	generateSvc service.GenerateService
}

func NewGenerateHandler(generateSvc service.GenerateService) *GenerateHandler {
	return &GenerateHandler{
		generateSvc: generateSvc,
	}
}

// GenerateThread 按转写文本和风格生成推文串，空行分段
func (s *GenerateHandler) GenerateThread(c *gin.Context) {
	var generateDTO dto.GenerateThreadDTO
	err := c.ShouldBind(&generateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.generateSvc.GenerateThread(c.Request.Context(), &generateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}
