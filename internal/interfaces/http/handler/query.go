package handler

// listQuery holds the common query parameters of list endpoints
type listQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=255"`
	Status   string `form:"status" binding:"omitempty,max=50"`
	SortBy   string `form:"sort_by" binding:"omitempty,max=50"`
	SortDesc bool   `form:"sort_desc"`
}

func (q *listQuery) applyDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
}
