package handler

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/response"
	"ThreadFarm/internal/pkg/util"
	"ThreadFarm/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	threadID, err := strconv.ParseUint(c.Query("thread_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	posts, err := s.postSvc.GetPostsByThread(c.Request.Context(), userID, threadID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

func (s *PostHandler) CreatePosts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.PostBulkCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	posts, err := s.postSvc.CreatePosts(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var patchDTO dto.PostPatchDTO
	if err = c.ShouldBind(&patchDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &patchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

func (s *PostHandler) ReorderPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var reorderDTO dto.PostReorderDTO
	err := c.ShouldBind(&reorderDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.postSvc.ReorderPosts(c.Request.Context(), userID, &reorderDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}
