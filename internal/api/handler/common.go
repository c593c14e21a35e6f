package handler

import (
	"SkillNest/internal/api/middleware"
	"SkillNest/internal/pkg/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 允许客户端排序的字段白名单，防止任意字段注入排序条件
var sortableFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"likes":      true,
}

// pageableFrom 解析分页与排序查询参数，非法值交由 Normalize 兜底
func pageableFrom(c *gin.Context) util.Pageable {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	sortField := c.Query("sort")
	if !sortableFields[sortField] {
		sortField = ""
	}

	return util.Pageable{
		Page:      page,
		PageSize:  pageSize,
		SortField: sortField,
		SortAsc:   sortField != "" && c.Query("order") == "asc",
	}.Normalize()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func currentUserName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserNameKey)
}
