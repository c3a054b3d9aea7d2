//go:build integration

// 需要真实 PostgreSQL 实例:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres dbname=lostfound_test sslmode=disable" \
//	go test -tags integration ./internal/repository/
package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/s2005-ops/houndnfound/internal/model"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		os.Exit(0)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic("连接测试数据库失败: " + err.Error())
	}

	if err := db.AutoMigrate(&model.Teacher{}, &model.LostItem{}); err != nil {
		panic("迁移测试表失败: " + err.Error())
	}

	testDB = db
	os.Exit(m.Run())
}

func cleanup(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("DELETE FROM lost_items").Error; err != nil {
		t.Fatalf("清理 lost_items 失败: %v", err)
	}
	if err := testDB.Exec("DELETE FROM teachers").Error; err != nil {
		t.Fatalf("清理 teachers 失败: %v", err)
	}
}

func seedItemAt(t *testing.T, repo ItemRepository, status string, createdAt time.Time) *model.LostItem {
	t.Helper()
	item := &model.LostItem{
		Description:        "黑色水杯",
		LocationFound:      "三楼走廊",
		CollectionLocation: "教务处",
		Status:             status,
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("写入测试物品失败: %v", err)
	}
	// gorm 不允许通过 Create 指定历史时间戳，直接改库
	if err := testDB.Model(&model.LostItem{}).
		Where("item_id = ?", item.ItemID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("设置创建时间失败: %v", err)
	}
	item.CreatedAt = createdAt
	return item
}

func TestBulkArchive_Integration(t *testing.T) {
	cleanup(t)
	repo := NewItemRepo(testDB)
	ctx := context.Background()

	old := seedItemAt(t, repo, model.StatusAvailable, time.Now().Add(-31*24*time.Hour))
	alreadyArchived := seedItemAt(t, repo, model.StatusArchived, time.Now().Add(-31*24*time.Hour))
	young := seedItemAt(t, repo, model.StatusAvailable, time.Now())

	cutoff := time.Now().Add(-30 * 24 * time.Hour)

	count, err := repo.BulkArchive(ctx, cutoff)
	if err != nil {
		t.Fatalf("批量归档失败: %v", err)
	}
	if count != 1 {
		t.Errorf("应归档 1 条, 得到 %d", count)
	}

	gotOld, err := repo.GetByID(ctx, old.ItemID)
	if err != nil {
		t.Fatalf("查询物品失败: %v", err)
	}
	if gotOld.Status != model.StatusArchived {
		t.Errorf("超期物品应被归档, 状态为 %s", gotOld.Status)
	}

	gotYoung, err := repo.GetByID(ctx, young.ItemID)
	if err != nil {
		t.Fatalf("查询物品失败: %v", err)
	}
	if gotYoung.Status != model.StatusAvailable {
		t.Errorf("未超期物品不应被归档, 状态为 %s", gotYoung.Status)
	}

	gotArchived, err := repo.GetByID(ctx, alreadyArchived.ItemID)
	if err != nil {
		t.Fatalf("查询物品失败: %v", err)
	}
	if gotArchived.Status != model.StatusArchived {
		t.Errorf("已归档物品状态不应变化, 状态为 %s", gotArchived.Status)
	}

	// 幂等：重复执行归档 0 条
	again, err := repo.BulkArchive(ctx, cutoff)
	if err != nil {
		t.Fatalf("重复归档失败: %v", err)
	}
	if again != 0 {
		t.Errorf("重复执行应归档 0 条, 得到 %d", again)
	}
}

func TestItemList_Integration(t *testing.T) {
	cleanup(t)
	repo := NewItemRepo(testDB)
	ctx := context.Background()

	seedItemAt(t, repo, model.StatusAvailable, time.Now())
	seedItemAt(t, repo, model.StatusCollected, time.Now())

	items, total, err := repo.List(ctx, &ItemListFilters{Status: model.StatusAvailable}, 0, 20)
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("应命中 1 条, 得到 total=%d len=%d", total, len(items))
	}

	// 关键词模糊匹配（不区分大小写由 ILIKE 保证）
	items, _, err = repo.List(ctx, &ItemListFilters{Keyword: "水杯"}, 0, 20)
	if err != nil {
		t.Fatalf("关键词查询失败: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("关键词应命中 2 条, 得到 %d", len(items))
	}
}

func TestTeacherRepo_Integration(t *testing.T) {
	cleanup(t)
	repo := NewTeacherRepo(testDB)
	ctx := context.Background()

	teacher := &model.Teacher{
		Username:     "zhang_wei",
		FullName:     "张伟",
		PasswordHash: "$2a$10$placeholderplaceholderplacehold",
		AccessLevel:  model.AccessLevelUser,
	}
	if err := repo.Create(ctx, teacher); err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "zhang_wei")
	if err != nil {
		t.Fatalf("按用户名查询失败: %v", err)
	}
	if got.TeacherID != teacher.TeacherID {
		t.Errorf("教师 ID 不匹配: %s != %s", got.TeacherID, teacher.TeacherID)
	}

	if _, err := repo.GetByUsername(ctx, "no_such_user"); err != gorm.ErrRecordNotFound {
		t.Errorf("不存在的用户名应返回 ErrRecordNotFound, 得到 %v", err)
	}
}
