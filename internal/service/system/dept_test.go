package system

import (
	"context"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDept 创建测试部门并返回部门行
func (ts *testServices) createTestDept(t *testing.T, pid uint, name string) *model.Dept {
	t.Helper()
	err := ts.deptService.AddDept(context.Background(), &model.DeptAddRequest{
		Pid:  pid,
		Name: name,
	})
	require.NoError(t, err, "创建测试部门不应该出错")

	var dept model.Dept
	require.NoError(t, ts.db.Where("name = ? AND is_delete = 0", name).Order("id DESC").First(&dept).Error)
	return &dept
}

// TestAddDeptUnknownParent 上级部门不存在时拒绝创建
func TestAddDeptUnknownParent(t *testing.T) {
	ts := setupTestServices(t)

	err := ts.deptService.AddDept(context.Background(), &model.DeptAddRequest{
		Pid:  9999,
		Name: "孤儿部门",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "上级部门不存在!", errs.MessageOf(err))
}

// TestEditDeptParentSelf 上级部门不能指向自己
func TestEditDeptParentSelf(t *testing.T) {
	ts := setupTestServices(t)

	dept := ts.createTestDept(t, 0, "总公司")

	err := ts.deptService.EditDept(context.Background(), &model.DeptEditRequest{
		ID: dept.ID,
		DeptAddRequest: model.DeptAddRequest{
			Pid:  dept.ID,
			Name: "总公司",
		},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "上级部门不能为自己!", errs.MessageOf(err))
}

// TestDeleteDeptWithChildren 存在子部门时拒绝删除
func TestDeleteDeptWithChildren(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	root := ts.createTestDept(t, 0, "总公司")
	child := ts.createTestDept(t, root.ID, "研发部")

	err := ts.deptService.DeleteDept(ctx, root.ID)
	require.Error(t, err, "有子部门的部门删除应该失败")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "请先删除子级部门再操作!", errs.MessageOf(err))

	require.NoError(t, ts.deptService.DeleteDept(ctx, child.ID))
	require.NoError(t, ts.deptService.DeleteDept(ctx, root.ID))
}

// TestDeleteDeptInUse 被未删除用户引用的部门不允许删除
func TestDeleteDeptInUse(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	dept := ts.createTestDept(t, 0, "研发部")
	_, err := ts.userService.AddUser(ctx, &model.UserAddRequest{
		Username: "zhangsan",
		Nickname: "张三",
		Password: "password123",
		DeptIds:  []uint{dept.ID},
	})
	require.NoError(t, err)

	err = ts.deptService.DeleteDept(ctx, dept.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "部门已被管理员使用,请先移除", errs.MessageOf(err))
}

// TestDeleteDeptSoftDelete 部门软删除后业务不可见但物理行保留
func TestDeleteDeptSoftDelete(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	dept := ts.createTestDept(t, 0, "临时部门")
	require.NoError(t, ts.deptService.DeleteDept(ctx, dept.ID))

	_, err := ts.deptService.GetDeptDetail(ctx, dept.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	var row model.Dept
	require.NoError(t, ts.db.Where("id = ?", dept.ID).First(&row).Error)
	assert.Equal(t, uint8(1), row.IsDelete, "软删除仅置标记")
}

// TestGetDeptListTree 部门列表装配为树
func TestGetDeptListTree(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	root := ts.createTestDept(t, 0, "总公司")
	ts.createTestDept(t, root.ID, "研发部")
	ts.createTestDept(t, root.ID, "运营部")

	tree, err := ts.deptService.GetDeptList(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	assert.Len(t, tree[0].Children, 2)
}

// TestGetDeptListFilter 名称与停用状态过滤
func TestGetDeptListFilter(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestDept(t, 0, "研发部")
	stopped := ts.createTestDept(t, 0, "已停用部门")
	require.NoError(t, ts.deptService.EditDept(ctx, &model.DeptEditRequest{
		ID: stopped.ID,
		DeptAddRequest: model.DeptAddRequest{
			Name:   "已停用部门",
			IsStop: 1,
		},
	}))

	tree, err := ts.deptService.GetDeptList(ctx, "研发", nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "研发部", tree[0].Name)

	isStop := uint8(1)
	tree, err = ts.deptService.GetDeptList(ctx, "", &isStop)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "已停用部门", tree[0].Name)
}
