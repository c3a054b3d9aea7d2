package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/service"
	"github.com/s2005-ops/houndnfound/pkg/response"
)

// ItemHandler 失物接口处理器
type ItemHandler struct {
	itemService  service.ItemService
	assetService service.AssetService
	logger       *zap.Logger
}

// NewItemHandler 创建 ItemHandler 实例
func NewItemHandler(itemService service.ItemService, assetService service.AssetService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{itemService: itemService, assetService: assetService, logger: logger}
}

// Create 登记失物
// POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	result, err := h.itemService.Create(c.Request.Context(), &req, getTeacherID(c))
	if err != nil {
		if errors.Is(err, service.ErrFieldRequired) {
			response.BadRequest(c, 12002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 查询单个失物（公开接口）
// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	result, err := h.itemService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 查询失物列表（公开接口，学生查阅页数据源）
// GET /api/v1/items
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ItemListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	list, total, err := h.itemService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 编辑失物
// PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10000, "请求参数无效")
		return
	}

	result, err := h.itemService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrFieldRequired):
			response.BadRequest(c, 12002, err.Error())
		case errors.Is(err, service.ErrItemArchived):
			response.BadRequest(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Collect 标记失物已认领（幂等）
// POST /api/v1/items/:id/collect
func (h *ItemHandler) Collect(c *gin.Context) {
	result, err := h.itemService.MarkCollected(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrItemArchived):
			response.BadRequest(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除失物
// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.itemService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Stats 各状态物品数量统计
// GET /api/v1/items/stats
func (h *ItemHandler) Stats(c *gin.Context) {
	result, err := h.itemService.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Export 导出失物清单 Excel
// GET /api/v1/items/export
func (h *ItemHandler) Export(c *gin.Context) {
	buf, filename, err := h.itemService.Export(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 文件名含中文，按 RFC 5987 编码
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Upload 上传失物图片
// POST /api/v1/items/upload
func (h *ItemHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, 10000, "缺少 image 文件字段")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.assetService.SaveImage(f, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, 12004, err.Error())
		case errors.Is(err, service.ErrImageBadType):
			response.BadRequest(c, 12005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// AutoArchive 自动归档超期物品（内部接口，供定时任务调用）
// POST /api/v1/internal/auto-archive
func (h *ItemHandler) AutoArchive(c *gin.Context) {
	count, err := h.itemService.AutoArchive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, &dto.SweepResponse{ArchivedCount: count})
}
