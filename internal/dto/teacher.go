package dto

// ── 教师管理模块 DTO ──

// CreateTeacherRequest 创建教师账号请求（仅 super_admin 可用的线下开通通道）
type CreateTeacherRequest struct {
	Username    string `json:"username"     binding:"required,min=3,max=50"`
	FullName    string `json:"full_name"    binding:"required,min=2,max=100"`
	Email       string `json:"email"        binding:"omitempty,email"`
	AccessLevel string `json:"access_level" binding:"required,oneof=user admin super_admin"`
}

// CreateTeacherResponse 创建教师账号响应，临时密码仅在此处返回一次
type CreateTeacherResponse struct {
	Teacher      TeacherResponse `json:"teacher"`
	TempPassword string          `json:"temp_password"`
}

// UpdateAccessLevelRequest 调整权限级别请求
type UpdateAccessLevelRequest struct {
	AccessLevel string `json:"access_level" binding:"required,oneof=user admin super_admin"`
}
