package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/s2005-ops/houndnfound/internal/model"
)

// ItemListFilters 物品列表查询条件
type ItemListFilters struct {
	Status  string // 为空则不过滤
	Keyword string // 模糊匹配描述与两个地点字段
}

// ItemRepository 失物数据访问接口
type ItemRepository interface {
	Create(ctx context.Context, item *model.LostItem) error
	GetByID(ctx context.Context, id string) (*model.LostItem, error)
	Update(ctx context.Context, item *model.LostItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *ItemListFilters, offset, limit int) ([]model.LostItem, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// BulkArchive 将创建时间早于 cutoff 且尚未归档的物品全部置为 archived，
	// 返回受影响行数。单条 UPDATE 语句，由数据库保证原子性。
	BulkArchive(ctx context.Context, cutoff time.Time) (int64, error)
}

// itemRepo ItemRepository 的 GORM 实现
type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo 创建 ItemRepository 实例
func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.LostItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.LostItem, error) {
	var item model.LostItem
	err := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Update(ctx context.Context, item *model.LostItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		Delete(&model.LostItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) List(ctx context.Context, filters *ItemListFilters, offset, limit int) ([]model.LostItem, int64, error) {
	var items []model.LostItem
	var total int64

	db := r.db.WithContext(ctx).Model(&model.LostItem{})

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where(
				"description ILIKE ? OR location_found ILIKE ? OR collection_location ILIKE ?",
				kw, kw, kw,
			)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *itemRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount

	err := r.db.WithContext(ctx).
		Model(&model.LostItem{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *itemRepo) BulkArchive(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LostItem{}).
		Where("created_at < ? AND status <> ?", cutoff, model.StatusArchived).
		Updates(map[string]interface{}{
			"status":     model.StatusArchived,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
