package consts

// 固定的 API 提示信息

const (
	MsgNotFound              = "资源不存在"
	MsgNoFotoID              = "没有该 ID 的照片"
	MsgNoRating              = "评分不存在或不可用"
	MsgCommNotFound          = "评论不存在或不可用"
	MsgOwnFoto               = "不能给自己的照片评分"
	MsgVoteTwice             = "不能重复评分"
	MsgForbidden             = "没有权限执行该操作"
	MsgTooManyTags           = "标签过多！最多 5 个"
	MsgAlreadyExists         = "账号已存在"
	MsgInvalidEmail          = "邮箱或密码错误"
	MsgInvalidPass           = "邮箱或密码错误"
	MsgNotConfirmed          = "邮箱尚未验证"
	MsgUserBanned            = "账号已被封禁"
	MsgAlreadyBanned         = "账号已处于封禁状态"
	MsgInvalidToken          = "Token 无效或已过期"
	MsgRoleExists            = "用户已是该角色"
	MsgLogout                = "已成功退出登录"
	MsgEmailConfirmed        = "邮箱验证成功"
	MsgEmailConfirmedAlready = "邮箱已验证过"
)
