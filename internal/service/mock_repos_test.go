package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s2005-ops/houndnfound/internal/model"
	"github.com/s2005-ops/houndnfound/internal/repository"
)

// ── 测试用内存仓库 ──

// mockItemRepo 基于内存 map 的 ItemRepository 实现
type mockItemRepo struct {
	items       map[string]*model.LostItem
	createCalls int
	updateCalls int
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[string]*model.LostItem)}
}

func (m *mockItemRepo) Create(_ context.Context, item *model.LostItem) error {
	m.createCalls++
	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	cp := *item
	m.items[item.ItemID] = &cp
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id string) (*model.LostItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *mockItemRepo) Update(_ context.Context, item *model.LostItem) error {
	m.updateCalls++
	if _, ok := m.items[item.ItemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	item.UpdatedAt = time.Now()
	cp := *item
	m.items[item.ItemID] = &cp
	return nil
}

func (m *mockItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockItemRepo) List(_ context.Context, filters *repository.ItemListFilters, offset, limit int) ([]model.LostItem, int64, error) {
	var all []model.LostItem
	for _, item := range m.items {
		if filters != nil {
			if filters.Status != "" && item.Status != filters.Status {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(item.Description), kw) &&
					!strings.Contains(strings.ToLower(item.LocationFound), kw) &&
					!strings.Contains(strings.ToLower(item.CollectionLocation), kw) {
					continue
				}
			}
		}
		all = append(all, *item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockItemRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, item := range m.items {
		counts[item.Status]++
	}
	return counts, nil
}

func (m *mockItemRepo) BulkArchive(_ context.Context, cutoff time.Time) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.CreatedAt.Before(cutoff) && item.Status != model.StatusArchived {
			item.Status = model.StatusArchived
			item.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}

// mockTeacherRepo 基于内存 map 的 TeacherRepository 实现
type mockTeacherRepo struct {
	teachers map[string]*model.Teacher // key: teacher_id
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = uuid.New().String()
	}
	now := time.Now()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now
	cp := *teacher
	m.teachers[teacher.TeacherID] = &cp
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *teacher
	return &cp, nil
}

func (m *mockTeacherRepo) GetByUsername(_ context.Context, username string) (*model.Teacher, error) {
	for _, teacher := range m.teachers {
		if teacher.Username == username {
			cp := *teacher
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	if _, ok := m.teachers[teacher.TeacherID]; !ok {
		return gorm.ErrRecordNotFound
	}
	teacher.UpdatedAt = time.Now()
	cp := *teacher
	m.teachers[teacher.TeacherID] = &cp
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var all []model.Teacher
	for _, teacher := range m.teachers {
		all = append(all, *teacher)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

// newTestRepository 组装测试用仓库聚合
func newTestRepository(itemRepo *mockItemRepo, teacherRepo *mockTeacherRepo) *repository.Repository {
	return &repository.Repository{
		Item:    itemRepo,
		Teacher: teacherRepo,
	}
}
