package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/s2005-ops/houndnfound/config"
	"github.com/s2005-ops/houndnfound/internal/dto"
	"github.com/s2005-ops/houndnfound/internal/model"
	"github.com/s2005-ops/houndnfound/internal/repository"
)

// ── 失物模块业务错误 ──

var (
	ErrItemNotFound = errors.New("物品不存在")
	// ErrFieldRequired 描述与两个地点字段去除首尾空白后不能为空
	ErrFieldRequired = errors.New("描述、拾获地点、领取地点均为必填")
	// ErrItemArchived 已归档为终态，不允许再变更状态
	ErrItemArchived       = errors.New("已归档的物品不可再变更状态")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ItemService 失物业务接口
type ItemService interface {
	Create(ctx context.Context, req *dto.CreateItemRequest, teacherID string) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	List(ctx context.Context, req *dto.ItemListRequest) ([]dto.ItemResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateItemRequest) (*dto.ItemResponse, error)
	MarkCollected(ctx context.Context, id string) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.ItemStatsResponse, error)
	// AutoArchive 归档所有超过保留时长且未归档的物品，返回本次归档数量。
	// 谓词基于 created_at 截止时间，重复执行为幂等操作。
	AutoArchive(ctx context.Context) (int64, error)
	Export(ctx context.Context) (*bytes.Buffer, string, error)
}

type itemService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewItemService 创建 ItemService 实例
func NewItemService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ItemService {
	return &itemService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *itemService) Create(ctx context.Context, req *dto.CreateItemRequest, teacherID string) (*dto.ItemResponse, error) {
	// 先校验再落库：任何校验失败都不应产生写操作
	description := strings.TrimSpace(req.Description)
	locationFound := strings.TrimSpace(req.LocationFound)
	collectionLocation := strings.TrimSpace(req.CollectionLocation)
	if description == "" || locationFound == "" || collectionLocation == "" {
		return nil, ErrFieldRequired
	}

	item := &model.LostItem{
		Description:        description,
		LocationFound:      locationFound,
		CollectionLocation: collectionLocation,
		ImageURL:           normalizeImageURL(req.ImageURL),
		Status:             model.StatusAvailable,
		TeacherID:          &teacherID,
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		s.logger.Error("登记失物失败", zap.Error(err))
		return nil, err
	}

	return toItemResponse(item), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *itemService) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询物品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toItemResponse(item), nil
}

// ────────────────────── List ──────────────────────

func (s *itemService) List(ctx context.Context, req *dto.ItemListRequest) ([]dto.ItemResponse, int64, error) {
	filters := &repository.ItemListFilters{
		Status:  req.Status,
		Keyword: strings.TrimSpace(req.Keyword),
	}

	items, total, err := s.repo.Item.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询物品列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *toItemResponse(&items[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *itemService) Update(ctx context.Context, id string, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询物品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 先做全部校验，再应用变更
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, ErrFieldRequired
	}
	if req.LocationFound != nil && strings.TrimSpace(*req.LocationFound) == "" {
		return nil, ErrFieldRequired
	}
	if req.CollectionLocation != nil && strings.TrimSpace(*req.CollectionLocation) == "" {
		return nil, ErrFieldRequired
	}
	if req.Status != nil && !model.CanTransition(item.Status, *req.Status) {
		return nil, ErrItemArchived
	}

	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.LocationFound != nil {
		item.LocationFound = strings.TrimSpace(*req.LocationFound)
	}
	if req.CollectionLocation != nil {
		item.CollectionLocation = strings.TrimSpace(*req.CollectionLocation)
	}
	if req.ImageURL != nil {
		item.ImageURL = normalizeImageURL(req.ImageURL)
	}
	if req.Status != nil {
		applyStatus(item, *req.Status)
	}

	if err := s.repo.Item.Update(ctx, item); err != nil {
		s.logger.Error("更新物品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toItemResponse(item), nil
}

// ────────────────────── MarkCollected ──────────────────────

func (s *itemService) MarkCollected(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询物品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if item.Status == model.StatusArchived {
		return nil, ErrItemArchived
	}

	// 重复标记为幂等操作，不触写库、不刷新 collected_at
	if item.Status == model.StatusCollected {
		return toItemResponse(item), nil
	}

	applyStatus(item, model.StatusCollected)

	if err := s.repo.Item.Update(ctx, item); err != nil {
		s.logger.Error("标记认领失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toItemResponse(item), nil
}

// ────────────────────── Delete ──────────────────────

func (s *itemService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Item.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("删除物品失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *itemService) Stats(ctx context.Context) (*dto.ItemStatsResponse, error) {
	counts, err := s.repo.Item.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("统计物品状态失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ItemStatsResponse{
		Available: counts[model.StatusAvailable],
		Collected: counts[model.StatusCollected],
		Archived:  counts[model.StatusArchived],
	}
	resp.Total = resp.Available + resp.Collected + resp.Archived
	return resp, nil
}

// ────────────────────── AutoArchive ──────────────────────

func (s *itemService) AutoArchive(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.cfg.Archive.Retention)

	count, err := s.repo.Item.BulkArchive(ctx, cutoff)
	if err != nil {
		s.logger.Error("自动归档失败", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}

	s.logger.Info("自动归档完成",
		zap.Time("cutoff", cutoff),
		zap.Int64("archived_count", count),
	)
	return count, nil
}

// ────────────────────── Export ──────────────────────

// Export 导出全部物品清单为 Excel，供后台仪表盘下载
func (s *itemService) Export(ctx context.Context) (*bytes.Buffer, string, error) {
	items, _, err := s.repo.Item.List(ctx, nil, 0, -1)
	if err != nil {
		s.logger.Error("查询物品列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "失物清单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 36)
	f.SetColWidth(sheetName, "B", "C", 20)
	f.SetColWidth(sheetName, "D", "F", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"描述", "拾获地点", "领取地点", "状态", "登记时间", "认领时间"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cellRef := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheetName, cellRef, h)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	statusNames := map[string]string{
		model.StatusAvailable: "待认领",
		model.StatusCollected: "已认领",
		model.StatusArchived:  "已归档",
	}

	row := 2
	for i := range items {
		item := &items[i]
		collectedAt := "-"
		if item.CollectedAt != nil {
			collectedAt = item.CollectedAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			item.Description,
			item.LocationFound,
			item.CollectionLocation,
			statusNames[item.Status],
			item.CreatedAt.Format("2006-01-02 15:04"),
			collectedAt,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("失物清单_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 内部辅助方法 ──

// applyStatus 应用状态变更。首次进入 collected 时记录 collected_at，
// 且只记录一次（依据存量状态判断，不信任客户端时间戳）。
func applyStatus(item *model.LostItem, status string) {
	if status == model.StatusCollected && item.CollectedAt == nil {
		now := time.Now()
		item.CollectedAt = &now
	}
	item.Status = status
}

// normalizeImageURL 空串视为清除图片
func normalizeImageURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// toItemResponse 将 model.LostItem 转换为 dto.ItemResponse
func toItemResponse(item *model.LostItem) *dto.ItemResponse {
	var collectedAt *string
	if item.CollectedAt != nil {
		s := item.CollectedAt.Format(time.RFC3339)
		collectedAt = &s
	}
	return &dto.ItemResponse{
		ID:                 item.ItemID,
		Description:        item.Description,
		LocationFound:      item.LocationFound,
		CollectionLocation: item.CollectionLocation,
		ImageURL:           item.ImageURL,
		Status:             item.Status,
		TeacherID:          item.TeacherID,
		CollectedAt:        collectedAt,
		CreatedAt:          item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          item.UpdatedAt.Format(time.RFC3339),
	}
}
