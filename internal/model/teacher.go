package model

import "time"

// ── 教师权限级别 ──

const (
	AccessLevelUser       = "user"
	AccessLevelAdmin      = "admin"
	AccessLevelSuperAdmin = "super_admin"
)

// IsValidAccessLevel 判断是否为合法的权限级别
func IsValidAccessLevel(l string) bool {
	switch l {
	case AccessLevelUser, AccessLevelAdmin, AccessLevelSuperAdmin:
		return true
	}
	return false
}

// Teacher 教师表 — 对应 teachers
// username 为唯一登录标识；email 仅作展示用途
type Teacher struct {
	TeacherID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	FullName     string    `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        *string   `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	AccessLevel  string    `gorm:"type:varchar(20);not null;default:'user'"       json:"access_level"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
