package service

import (
	"testing"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
)

// 测试内容：验证评论创建，照片不存在时返回不存在错误。
func TestCreateComment(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, consts.RoleUser)
	commenter := createTestUser(t, consts.RoleUser)
	foto := createTestFoto(t, owner)

	comment, err := CreateComment(foto.ID, "nice shot", commenter)
	if err != nil {
		t.Fatalf("CreateComment 错误: %v", err)
	}
	if comment.ID == 0 || comment.UpdateStatus {
		t.Fatalf("非预期评论记录: %+v", comment)
	}

	_, err = CreateComment(9999, "ghost", commenter)
	if !common.IsCode(err, common.ErrorCodeNotFound) {
		t.Fatalf("期望不存在错误，实际为 %v", err)
	}
}

// 测试内容：验证仅评论本人可编辑，编辑后打上已编辑标记并记录时间。
func TestEditComment(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, consts.RoleUser)
	commenter := createTestUser(t, consts.RoleUser)
	admin := createTestUser(t, consts.RoleAdmin)
	foto := createTestFoto(t, owner)

	comment, err := CreateComment(foto.ID, "first", commenter)
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	// 管理员也不能替他人编辑评论内容
	if _, err := EditComment(comment.ID, "hacked", admin); !common.IsCode(err, common.ErrorCodeForbidden) {
		t.Fatalf("期望禁止错误，实际为 %v", err)
	}

	got, err := EditComment(comment.ID, "edited", commenter)
	if err != nil {
		t.Fatalf("EditComment 错误: %v", err)
	}
	if got.Text != "edited" || !got.UpdateStatus || got.UpdatedAt == nil {
		t.Fatalf("非预期编辑结果: %+v", got)
	}
}

// 测试内容：验证评论本人、版主和管理员可删除评论，无关用户被拒绝。
func TestDeleteComment_Permissions(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, consts.RoleUser)
	commenter := createTestUser(t, consts.RoleUser)
	stranger := createTestUser(t, consts.RoleUser)
	moder := createTestUser(t, consts.RoleModer)
	foto := createTestFoto(t, owner)

	c1, _ := CreateComment(foto.ID, "one", commenter)
	c2, _ := CreateComment(foto.ID, "two", commenter)

	if _, err := DeleteComment(c1.ID, stranger); !common.IsCode(err, common.ErrorCodeForbidden) {
		t.Fatalf("期望禁止错误，实际为 %v", err)
	}
	if _, err := DeleteComment(c1.ID, commenter); err != nil {
		t.Fatalf("本人删除失败: %v", err)
	}
	if _, err := DeleteComment(c2.ID, moder); err != nil {
		t.Fatalf("版主删除失败: %v", err)
	}
	if _, err := DeleteComment(c2.ID, moder); !common.IsCode(err, common.ErrorCodeNotFound) {
		t.Fatalf("期望不存在错误，实际为 %v", err)
	}
}

// 测试内容：验证照片评论列表与我的评论列表。
func TestCommentListing(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, consts.RoleUser)
	c1 := createTestUser(t, consts.RoleUser)
	c2 := createTestUser(t, consts.RoleUser)
	foto := createTestFoto(t, owner)

	if _, err := CreateComment(foto.ID, "a", c1); err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if _, err := CreateComment(foto.ID, "b", c2); err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	all, err := GetFotoComments(foto.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("期望 2 条评论，实际为 %d err=%v", len(all), err)
	}

	mine, err := GetMyComments(c1)
	if err != nil || len(mine) != 1 {
		t.Fatalf("期望 1 条评论，实际为 %d err=%v", len(mine), err)
	}
}
