package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Item    ItemRepository
	Teacher TeacherRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Item:    NewItemRepo(db),
		Teacher: NewTeacherRepo(db),
	}
}
