package dto

// ── 失物模块 DTO ──

// CreateItemRequest 登记失物请求
type CreateItemRequest struct {
	Description        string  `json:"description"         binding:"required"`
	LocationFound      string  `json:"location_found"      binding:"required"`
	CollectionLocation string  `json:"collection_location" binding:"required"`
	ImageURL           *string `json:"image_url"`
}

// UpdateItemRequest 编辑失物请求（仅更新非 nil 字段）
type UpdateItemRequest struct {
	Description        *string `json:"description"`
	LocationFound      *string `json:"location_found"`
	CollectionLocation *string `json:"collection_location"`
	ImageURL           *string `json:"image_url"`
	Status             *string `json:"status" binding:"omitempty,oneof=available collected archived"`
}

// ItemListRequest 失物列表查询参数
type ItemListRequest struct {
	PaginationRequest
	Status  string `form:"status"  binding:"omitempty,oneof=available collected archived"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// ItemResponse 失物信息响应
type ItemResponse struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	LocationFound      string  `json:"location_found"`
	CollectionLocation string  `json:"collection_location"`
	ImageURL           *string `json:"image_url,omitempty"`
	Status             string  `json:"status"`
	TeacherID          *string `json:"teacher_id,omitempty"`
	CollectedAt        *string `json:"collected_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ItemStatsResponse 各状态物品数量统计（后台仪表盘图表数据源）
type ItemStatsResponse struct {
	Available int64 `json:"available"`
	Collected int64 `json:"collected"`
	Archived  int64 `json:"archived"`
	Total     int64 `json:"total"`
}

// SweepResponse 自动归档执行结果
type SweepResponse struct {
	ArchivedCount int64 `json:"archived_count"`
}

// UploadResponse 图片上传响应
type UploadResponse struct {
	URL string `json:"url"`
}
