package service

import (
	"photo-shake-server/internal/model"
)

// 集中式权限判定，替代散落在各处的角色枚举判断

// CanModify 资源属主或管理员可修改
func CanModify(actor *model.User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == ownerID
}

// CanModerate 资源属主、版主或管理员可操作（评分编辑、评论删除）
func CanModerate(actor *model.User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.IsModer() || actor.ID == ownerID
}
