package model

import "time"

// ── 物品状态 ──

const (
	// StatusAvailable 待认领（初始状态）
	StatusAvailable = "available"
	// StatusCollected 已被认领
	StatusCollected = "collected"
	// StatusArchived 已归档（终态，不可再变更）
	StatusArchived = "archived"
)

// IsValidStatus 判断是否为合法的物品状态
func IsValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusCollected, StatusArchived:
		return true
	}
	return false
}

// CanTransition 判断物品状态能否从 from 变更为 to。
// archived 为终态；其余状态间允许任意变更（含归档）。
func CanTransition(from, to string) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	if from == StatusArchived {
		return from == to
	}
	return true
}

// LostItem 失物表 — 对应 lost_items
type LostItem struct {
	ItemID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"id"`
	Description        string     `gorm:"type:text;not null"                                 json:"description"`
	LocationFound      string     `gorm:"type:varchar(255);not null"                         json:"location_found"`
	CollectionLocation string     `gorm:"type:varchar(255);not null"                         json:"collection_location"`
	ImageURL           *string    `gorm:"type:text"                                          json:"image_url,omitempty"`
	Status             string     `gorm:"type:varchar(20);not null;default:'available'"      json:"status"`
	TeacherID          *string    `gorm:"type:uuid"                                          json:"teacher_id,omitempty"`
	CollectedAt        *time.Time `json:"collected_at,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"updated_at"`

	// 关联（创建者被删除后置空，物品保留）
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (LostItem) TableName() string { return "lost_items" }
