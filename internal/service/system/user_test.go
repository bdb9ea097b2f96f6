package system

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// operatorContext 构造携带操作者ID的上下文
func operatorContext(operatorID uint) context.Context {
	return context.WithValue(context.Background(), utils.ContextKeyUserID, operatorID)
}

// rawUserRow 绕过软删除过滤直接读取用户行
func (ts *testServices) rawUserRow(t *testing.T, userID uint) *model.User {
	t.Helper()
	var user model.User
	require.NoError(t, ts.db.Where("id = ?", userID).First(&user).Error)
	return &user
}

// TestAddUserDuplicateUsername 账号在未删除用户间查重
func TestAddUserDuplicateUsername(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestUser(t, "zhangsan", "password123", nil)

	_, err := ts.userService.AddUser(ctx, &model.UserAddRequest{
		Username: "zhangsan",
		Nickname: "张三",
		Password: "password456",
	})
	require.Error(t, err, "重复账号创建应该失败")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "账号已存在换一个吧!", errs.MessageOf(err))
}

// TestAddUserPasswordHashed 密码落库为argon2id哈希，默认头像补齐
func TestAddUserPasswordHashed(t *testing.T) {
	ts := setupTestServices(t)

	user := ts.createTestUser(t, "wangwu", "password123", nil)

	row := ts.rawUserRow(t, user.ID)
	assert.NotEqual(t, "password123", row.Password, "密码不应该明文存储")
	assert.True(t, strings.HasPrefix(row.Password, "$argon2id$"), "密码应该是argon2id哈希")
	assert.NotEmpty(t, row.Avatar, "空头像应该填充默认头像")
}

// TestUpdateUserWrongCurrentPassword 当前密码错误时拒绝修改且存量哈希不变
func TestUpdateUserWrongCurrentPassword(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	user := ts.createTestUser(t, "zhangsan", "password123", nil)
	before := ts.rawUserRow(t, user.ID).Password

	err := ts.userService.UpdateUser(ctx, &model.UserUpdateRequest{
		Nickname:     "张三",
		Password:     "newpass123",
		CurrPassword: "wrongpassword",
	}, user.ID)
	require.Error(t, err, "当前密码错误应该拒绝修改")
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, "当前密码不正确!", errs.MessageOf(err))

	after := ts.rawUserRow(t, user.ID).Password
	assert.Equal(t, before, after, "校验失败后存量哈希应该保持不变")
}

// TestUpdateUserPasswordLength 新密码长度边界(6-20位)
func TestUpdateUserPasswordLength(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	user := ts.createTestUser(t, "zhangsan", "password123", nil)

	// 5位和21位拒绝
	for _, bad := range []string{"12345", strings.Repeat("x", 21)} {
		err := ts.userService.UpdateUser(ctx, &model.UserUpdateRequest{
			Nickname:     "张三",
			Password:     bad,
			CurrPassword: "password123",
		}, user.ID)
		require.Error(t, err, "长度%d的新密码应该被拒绝", len(bad))
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "密码长度需在6到20位之间!", errs.MessageOf(err))
	}

	// 6位边界接受
	err := ts.userService.UpdateUser(ctx, &model.UserUpdateRequest{
		Nickname:     "张三",
		Password:     "123456",
		CurrPassword: "password123",
	}, user.ID)
	require.NoError(t, err, "6位新密码应该被接受")

	// 20位边界接受(当前密码已变更为上一步的新密码)
	err = ts.userService.UpdateUser(ctx, &model.UserUpdateRequest{
		Nickname:     "张三",
		Password:     strings.Repeat("y", 20),
		CurrPassword: "123456",
	}, user.ID)
	require.NoError(t, err, "20位新密码应该被接受")
}

// TestUpdateUserRequiresCurrentPassword 修改密码必须提供当前密码
func TestUpdateUserRequiresCurrentPassword(t *testing.T) {
	ts := setupTestServices(t)

	user := ts.createTestUser(t, "zhangsan", "password123", nil)

	err := ts.userService.UpdateUser(context.Background(), &model.UserUpdateRequest{
		Nickname: "张三",
		Password: "newpass123",
	}, user.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

// TestDeleteUserSoftDelete 软删除仅置标记，行和关联行保留
func TestDeleteUserSoftDelete(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	// 首个用户占掉超级管理员的ID，删除目标必须是普通用户
	admin := ts.createTestUser(t, "admin", "password123", nil)
	require.Equal(t, model.SuperAdminID, admin.ID)

	role := ts.createTestRole(t, "普通角色", "")
	user := ts.createTestUser(t, "zhangsan", "password123", []uint{role.ID})
	require.NotEqual(t, model.SuperAdminID, user.ID)

	require.NoError(t, ts.userService.DeleteUser(ctx, user.ID))

	// 业务视角不可见
	got, err := ts.userRepo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "软删除用户对业务查询应该不可见")

	_, err = ts.userService.GetUserDetail(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// 账号立即可复用
	exists, err := ts.userRepo.UsernameExists(ctx, "zhangsan", 0)
	require.NoError(t, err)
	assert.False(t, exists, "软删除后的账号应该立即可复用")

	// 物理行与关联行保留，账号被重命名为带ID后缀的占位
	row := ts.rawUserRow(t, user.ID)
	assert.Equal(t, uint8(1), row.IsDelete)
	assert.Equal(t, fmt.Sprintf("zhangsan#deleted_%d", user.ID), row.Username, "软删除应该重命名账号释放唯一索引占位")

	var linkCount int64
	require.NoError(t, ts.db.Model(&model.UserRole{}).Where("user_id = ?", user.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(1), linkCount, "软删除不应该清理角色关联行")

	// 同名账号可以重新注册
	_, err = ts.userService.AddUser(ctx, &model.UserAddRequest{
		Username: "zhangsan",
		Nickname: "张三",
		Password: "password456",
	})
	require.NoError(t, err, "软删除释放的账号应该可以重新创建")
}

// TestAddUserUniqueIndexBackstop 唯一索引兜底绕过预检查的重名写入
func TestAddUserUniqueIndexBackstop(t *testing.T) {
	ts := setupTestServices(t)

	ts.createTestUser(t, "zhangsan", "password123", nil)

	// 直接落库模拟并发穿过UsernameExists预检查的第二次插入
	err := ts.db.Create(&model.User{
		Username: "zhangsan",
		Nickname: "并发副本",
		Password: "hash",
	}).Error
	require.Error(t, err, "重名插入应该被唯一索引拦截")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// TestDeleteUserForbiddenRules 超级管理员与自身不允许删除
func TestDeleteUserForbiddenRules(t *testing.T) {
	ts := setupTestServices(t)

	// 第一个创建的用户占据超级管理员ID
	admin := ts.createTestUser(t, "admin", "password123", nil)
	require.Equal(t, model.SuperAdminID, admin.ID)
	other := ts.createTestUser(t, "zhangsan", "password123", nil)

	err := ts.userService.DeleteUser(context.Background(), admin.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, "系统管理员不允许删除!", errs.MessageOf(err))

	err = ts.userService.DeleteUser(operatorContext(other.ID), other.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, "不能删除自己!", errs.MessageOf(err))
}

// TestDisableUserToggle 禁用状态切换且不允许禁用自己
func TestDisableUserToggle(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	user := ts.createTestUser(t, "zhangsan", "password123", nil)

	require.NoError(t, ts.userService.DisableUser(ctx, user.ID))
	assert.Equal(t, uint8(1), ts.rawUserRow(t, user.ID).IsDisable)

	require.NoError(t, ts.userService.DisableUser(ctx, user.ID))
	assert.Equal(t, uint8(0), ts.rawUserRow(t, user.ID).IsDisable, "再次切换应该恢复启用")

	err := ts.userService.DisableUser(operatorContext(user.ID), user.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	assert.Equal(t, "不能禁用自己!", errs.MessageOf(err))
}

// TestEditUserReplacesAssociations 编辑用户全量替换角色/部门/岗位关联
func TestEditUserReplacesAssociations(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	roleA := ts.createTestRole(t, "角色A", "")
	roleB := ts.createTestRole(t, "角色B", "")
	user := ts.createTestUser(t, "zhangsan", "password123", []uint{roleA.ID})

	err := ts.userService.EditUser(ctx, &model.UserEditRequest{
		ID: user.ID,
		UserAddRequest: model.UserAddRequest{
			Username: "zhangsan",
			Nickname: "张三",
			RoleIds:  []uint{roleB.ID},
		},
	})
	require.NoError(t, err)

	detail, err := ts.userService.GetUserDetail(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{roleB.ID}, detail.RoleIds, "旧角色关联应该被全量替换")
}

// TestGetUserListFilters 用户列表过滤(账号模糊/角色精确)且软删除不可见
func TestGetUserListFilters(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	role := ts.createTestRole(t, "过滤角色", "")
	ts.createTestUser(t, "zhangsan", "password123", []uint{role.ID})
	ts.createTestUser(t, "zhangsi", "password123", nil)
	deleted := ts.createTestUser(t, "deleted_user", "password123", nil)
	require.NoError(t, ts.userService.DeleteUser(ctx, deleted.ID))

	// 账号前缀模糊匹配
	result, err := ts.userService.GetUserList(ctx, &model.UserListRequest{Username: "zhang"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)

	// 角色精确过滤
	result, err = ts.userService.GetUserList(ctx, &model.UserListRequest{Role: role.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)
	rows := result.Lists.([]*model.UserDetailResponse)
	require.Len(t, rows, 1)
	assert.Equal(t, "zhangsan", rows[0].Username)

	// 软删除用户不出现在列表
	result, err = ts.userService.GetUserList(ctx, &model.UserListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)
}
