package system

import (
	"context"
	"fmt"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddRoleDuplicateName 角色名称查重(名称去空格后比较)
func TestAddRoleDuplicateName(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	err := ts.roleService.AddRole(ctx, &model.RoleAddRequest{Name: "运营"})
	require.NoError(t, err, "首次创建角色不应该出错")

	// 仅首尾空格不同的名称视为同名
	err = ts.roleService.AddRole(ctx, &model.RoleAddRequest{Name: " 运营 "})
	require.Error(t, err, "重名角色创建应该失败")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "角色名称已存在!", errs.MessageOf(err))
}

// TestAddRoleEmptyName 空名称拒绝创建
func TestAddRoleEmptyName(t *testing.T) {
	ts := setupTestServices(t)

	err := ts.roleService.AddRole(context.Background(), &model.RoleAddRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

// TestAddRoleDropsUnknownMenuIDs 未知菜单ID静默丢弃
func TestAddRoleDropsUnknownMenuIDs(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	m1 := ts.createTestMenu(t, 0, "系统管理")
	role := ts.createTestRole(t, "审计员", fmt.Sprintf("%d,999", m1.ID))

	menuIDs, err := ts.roleRepo.GetRoleMenuIDs(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{m1.ID}, menuIDs, "不存在的菜单ID不应该写入关联")
}

// TestEditRoleReplacesMenuSet 编辑角色全量替换菜单关联集合
func TestEditRoleReplacesMenuSet(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	m1 := ts.createTestMenu(t, 0, "菜单一")
	m2 := ts.createTestMenu(t, 0, "菜单二")
	m3 := ts.createTestMenu(t, 0, "菜单三")
	m4 := ts.createTestMenu(t, 0, "菜单四")

	role := ts.createTestRole(t, "编辑测试", fmt.Sprintf("%d,%d,%d", m1.ID, m2.ID, m3.ID))

	menuIDs, err := ts.roleRepo.GetRoleMenuIDs(ctx, role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{m1.ID, m2.ID, m3.ID}, menuIDs)

	err = ts.roleService.EditRole(ctx, &model.RoleEditRequest{
		ID: role.ID,
		RoleAddRequest: model.RoleAddRequest{
			Name:    "编辑测试",
			MenuIds: fmt.Sprintf("%d,%d", m2.ID, m4.ID),
		},
	})
	require.NoError(t, err, "编辑角色不应该出错")

	menuIDs, err = ts.roleRepo.GetRoleMenuIDs(ctx, role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{m2.ID, m4.ID}, menuIDs, "旧关联应该被全量替换")
}

// TestEditRoleNotFound 编辑不存在的角色
func TestEditRoleNotFound(t *testing.T) {
	ts := setupTestServices(t)

	err := ts.roleService.EditRole(context.Background(), &model.RoleEditRequest{
		ID:             9999,
		RoleAddRequest: model.RoleAddRequest{Name: "不存在"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "角色已不存在!", errs.MessageOf(err))
}

// TestDeleteRoleInUse 被未删除用户引用的角色不允许删除
func TestDeleteRoleInUse(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	role := ts.createTestRole(t, "在用角色", "")
	ts.createTestUser(t, "zhangsan", "password123", []uint{role.ID})

	err := ts.roleService.DeleteRole(ctx, role.ID)
	require.Error(t, err, "在用角色删除应该失败")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "角色已被管理员使用,请先移除", errs.MessageOf(err))
}

// TestDeleteRoleRemovesMenuLinks 删除未使用角色时级联删除菜单关联
func TestDeleteRoleRemovesMenuLinks(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	m1 := ts.createTestMenu(t, 0, "菜单一")
	role := ts.createTestRole(t, "待删角色", fmt.Sprintf("%d", m1.ID))

	err := ts.roleService.DeleteRole(ctx, role.ID)
	require.NoError(t, err, "未使用角色删除不应该出错")

	got, err := ts.roleRepo.GetRoleByID(ctx, role.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "删除后角色行应该不存在")

	var linkCount int64
	require.NoError(t, ts.db.Model(&model.RoleMenu{}).Where("role_id = ?", role.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount, "删除后菜单关联行应该清空")
}

// TestGetRoleDetail 角色详情包含菜单ID集合与成员数
func TestGetRoleDetail(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	m1 := ts.createTestMenu(t, 0, "菜单一")
	role := ts.createTestRole(t, "详情角色", fmt.Sprintf("%d", m1.ID))
	ts.createTestUser(t, "lisi", "password123", []uint{role.ID})

	detail, err := ts.roleService.GetRoleDetail(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "详情角色", detail.Name)
	assert.Equal(t, []uint{m1.ID}, detail.Menus)
	assert.Equal(t, int64(1), detail.Member)
}

// TestGetRoleDetailNoMenus 无菜单角色的菜单集合是空切片而不是nil
func TestGetRoleDetailNoMenus(t *testing.T) {
	ts := setupTestServices(t)

	role := ts.createTestRole(t, "空菜单角色", "")

	detail, err := ts.roleService.GetRoleDetail(context.Background(), role.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Menus, "菜单集合应该序列化为[]而不是null")
	assert.Empty(t, detail.Menus)
}

// TestGetRoleListPaging 角色列表分页(45条数据分3页)
func TestGetRoleListPaging(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	for i := 1; i <= 45; i++ {
		err := ts.roleService.AddRole(ctx, &model.RoleAddRequest{
			Name: fmt.Sprintf("角色%02d", i),
			Sort: i,
		})
		require.NoError(t, err)
	}

	type page struct {
		no   int
		size int
	}
	expects := map[page]int{
		{1, 20}: 20,
		{2, 20}: 20,
		{3, 20}: 5,
	}
	for p, want := range expects {
		result, err := ts.roleService.GetRoleList(ctx, &model.RoleListRequest{
			PageParams: model.PageParams{PageNo: p.no, PageSize: p.size},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(45), result.Count)
		rows := result.Lists.([]*model.RoleDetailResponse)
		assert.Len(t, rows, want, "第%d页行数不符", p.no)
	}
}

// TestGetRoleListDefaultsPaging 缺省分页参数按默认值处理
func TestGetRoleListDefaultsPaging(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestRole(t, "默认分页角色", "")

	result, err := ts.roleService.GetRoleList(ctx, &model.RoleListRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPageNo, result.PageNo)
	assert.Equal(t, model.DefaultPageSize, result.PageSize)
	assert.Equal(t, int64(1), result.Count)
}

// TestGetRoleListKeyword 角色名称模糊过滤
func TestGetRoleListKeyword(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestRole(t, "运营专员", "")
	ts.createTestRole(t, "审计专员", "")

	result, err := ts.roleService.GetRoleList(ctx, &model.RoleListRequest{Keyword: "运营"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)
	rows := result.Lists.([]*model.RoleDetailResponse)
	require.Len(t, rows, 1)
	assert.Equal(t, "运营专员", rows[0].Name)
}
