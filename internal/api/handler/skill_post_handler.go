package handler

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type SkillPostHandler struct {
	postSvc service.SkillPostService
}

func NewSkillPostHandler(postSvc service.SkillPostService) *SkillPostHandler {
	return &SkillPostHandler{
		postSvc: postSvc,
	}
}

func (s *SkillPostHandler) Create(c *gin.Context) {
	var createDTO dto.SkillPostCreateDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), currentUserID(c), currentUserName(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *SkillPostHandler) Get(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *SkillPostHandler) Update(c *gin.Context) {
	var updateDTO dto.SkillPostCreateDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), c.Param("id"), currentUserID(c), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *SkillPostHandler) Delete(c *gin.Context) {
	if err := s.postSvc.DeletePost(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SkillPostHandler) DeleteBatch(c *gin.Context) {
	var batchDTO dto.BatchDeleteDTO
	if err := c.ShouldBind(&batchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.postSvc.DeletePosts(c.Request.Context(), batchDTO.IDs, currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SkillPostHandler) List(c *gin.Context) {
	page, err := s.postSvc.GetPosts(c.Request.Context(), currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) ListByOwner(c *gin.Context) {
	page, err := s.postSvc.GetPostsByOwner(c.Request.Context(), c.Param("id"), currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) ListByTag(c *gin.Context) {
	page, err := s.postSvc.GetPostsByTag(c.Request.Context(), c.Param("tag"), currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) ListByTags(c *gin.Context) {
	raw := c.Query("tags")
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	page, err := s.postSvc.GetPostsByTags(c.Request.Context(), tags, currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	page, err := s.postSvc.SearchPosts(c.Request.Context(), keyword, currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) Trending(c *gin.Context) {
	page, err := s.postSvc.GetTrendingPosts(c.Request.Context(), currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *SkillPostHandler) Tags(c *gin.Context) {
	tags, err := s.postSvc.GetAllTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}
