package util

// Pageable 分页与排序参数，SortField 为空时默认按 created_at 倒序
type Pageable struct {
	Page      int
	PageSize  int
	SortField string
	SortAsc   bool
}

// Normalize 修正非法分页参数并填充默认排序
func (p Pageable) Normalize() Pageable {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.SortField == "" {
		p.SortField = "created_at"
		p.SortAsc = false
	}
	return p
}

// Offset 计算跳过的文档数
func (p Pageable) Offset() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

// Limit 每页文档数
func (p Pageable) Limit() int64 {
	return int64(p.PageSize)
}

// PageSlice 对已排序的内存切片应用分页
func PageSlice[T any](items []T, p Pageable) []T {
	start := int(p.Offset())
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
