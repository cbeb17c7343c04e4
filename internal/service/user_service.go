package service

import (
	"errors"
	"log"
	"strings"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserProfile 用户公开主页信息
type UserProfile struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Avatar       string          `json:"avatar"`
	Role         consts.UserRole `json:"role"`
	IsActive     bool            `json:"is_active"`
	FotoCount    int64           `json:"foto_count"`
	CommentCount int64           `json:"comment_count"`
}

// CreateUser 注册新用户，邮箱冲突返回 409
func CreateUser(username, email, password string) (*model.User, error) {
	var existing model.User
	if db.DB.Where("email = ?", email).First(&existing).Error == nil {
		return nil, common.NewConflictError(consts.MsgAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash password error: %v\n", err)
		return nil, common.NewInternalError("密码处理失败")
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     consts.RoleUser,
		IsActive: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Create user error: %v\n", err)
		return nil, common.NewInternalError("用户创建失败")
	}
	return &user, nil
}

// GetUserByEmail 按邮箱精确查找用户
func GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID 按 ID 查找用户
func GetUserByID(id uint) (*model.User, error) {
	var user model.User
	err := db.DB.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// VerifyPassword 校验明文密码与哈希是否匹配
func VerifyPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// ConfirmEmail 将用户标记为已验证邮箱
func ConfirmEmail(email string) error {
	user, err := GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user.IsVerify {
		return common.NewConflictError(consts.MsgEmailConfirmedAlready)
	}
	return db.DB.Model(user).Update("is_verify", true).Error
}

// UpdateRefreshToken 保存（或清空）用户的刷新令牌
func UpdateRefreshToken(user *model.User, token string) error {
	return db.DB.Model(user).Update("refresh_token", token).Error
}

// EditProfile 修改用户名
func EditProfile(user *model.User, newUsername string) (*model.User, error) {
	newUsername = strings.TrimSpace(newUsername)
	if newUsername != "" {
		if err := db.DB.Model(user).Update("username", newUsername).Error; err != nil {
			log.Printf("Update username error: %v\n", err)
			return nil, common.NewInternalError("用户名更新失败")
		}
		user.Username = newUsername
	}
	return user, nil
}

// GetUsers 分页列出全部用户
func GetUsers(skip, limit int) ([]model.User, error) {
	var users []model.User
	err := db.DB.Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

// GetUsersWithUsername 用户名子串搜索，不区分大小写
func GetUsersWithUsername(username string) ([]model.User, error) {
	var users []model.User
	err := db.DB.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(username)+"%").Find(&users).Error
	return users, err
}

// GetUserProfile 按用户名精确查询用户主页，附带照片数与评论数
func GetUserProfile(username string) (*UserProfile, error) {
	var user model.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		return nil, err
	}

	var fotoCount, commentCount int64
	if err := db.DB.Model(&model.Foto{}).Where("user_id = ?", user.ID).Count(&fotoCount).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&model.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount).Error; err != nil {
		return nil, err
	}

	return &UserProfile{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Role:         user.Role,
		IsActive:     user.IsActive,
		FotoCount:    fotoCount,
		CommentCount: commentCount,
	}, nil
}

// BanUser 封禁用户。已封禁返回 409。
func BanUser(email string) error {
	user, err := GetUserByEmail(email)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return common.NewConflictError(consts.MsgAlreadyBanned)
	}
	if err := db.DB.Model(user).Update("is_active", false).Error; err != nil {
		log.Printf("Ban user error: %v\n", err)
		return common.NewInternalError("封禁失败")
	}
	return nil
}

// UnbanUser 解封用户
func UnbanUser(email string) error {
	user, err := GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user.IsActive {
		return common.NewConflictError("账号未被封禁")
	}
	if err := db.DB.Model(user).Update("is_active", true).Error; err != nil {
		log.Printf("Unban user error: %v\n", err)
		return common.NewInternalError("解封失败")
	}
	return nil
}

// ChangeRole 变更用户角色。角色未变化返回 409。
func ChangeRole(email string, role consts.UserRole) error {
	user, err := GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user.Role == role {
		return common.NewConflictError(consts.MsgRoleExists)
	}
	if err := db.DB.Model(user).Update("role", role).Error; err != nil {
		log.Printf("Change role error: %v\n", err)
		return common.NewInternalError("角色变更失败")
	}
	return nil
}
