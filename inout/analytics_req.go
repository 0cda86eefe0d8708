package inout

// GetReportReq 查询单个报表
type GetReportReq struct {
	Name string `uri:"name" binding:"required"`
}

// RunReportsReq 执行全部报表
type RunReportsReq struct {
	Export bool   `form:"export"`
	Upload bool   `form:"upload"`
	Format string `form:"format" binding:"omitempty,oneof=json csv"`
}
