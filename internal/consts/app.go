package consts

const (
	ApplicationName    = "PhotoShake Server"
	ApplicationVersion = "3.0.0"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleModer UserRole = "moder"
	RoleAdmin UserRole = "admin"
)

// RoleDisplayName 角色展示名
func RoleDisplayName(role UserRole) string {
	switch role {
	case RoleAdmin:
		return "Administrator"
	case RoleModer:
		return "Moderator"
	default:
		return "User"
	}
}

// ValidRole 校验角色字符串是否合法
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleUser, RoleModer, RoleAdmin:
		return true
	}
	return false
}

// MaxTagsPerFoto 单张照片最多允许的标签数
const MaxTagsPerFoto = 5
