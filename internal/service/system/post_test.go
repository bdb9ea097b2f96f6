package system

import (
	"context"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestPost 创建测试岗位并返回岗位行
func (ts *testServices) createTestPost(t *testing.T, code, name string) *model.Post {
	t.Helper()
	err := ts.postService.AddPost(context.Background(), &model.PostAddRequest{
		Code: code,
		Name: name,
	})
	require.NoError(t, err, "创建测试岗位不应该出错")

	var post model.Post
	require.NoError(t, ts.db.Where("code = ? AND is_delete = 0", code).First(&post).Error)
	return &post
}

// TestAddPostDuplicateCode 岗位编码在未删除岗位间查重
func TestAddPostDuplicateCode(t *testing.T) {
	ts := setupTestServices(t)

	ts.createTestPost(t, "dev", "研发人员")

	err := ts.postService.AddPost(context.Background(), &model.PostAddRequest{
		Code: "dev",
		Name: "另一个研发岗",
	})
	require.Error(t, err, "重复编码创建应该失败")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "岗位编码已存在!", errs.MessageOf(err))
}

// TestEditPostCodeConflict 编辑岗位时编码查重排除自身
func TestEditPostCodeConflict(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestPost(t, "dev", "研发人员")
	op := ts.createTestPost(t, "op", "运营人员")

	// 改成他人编码冲突
	err := ts.postService.EditPost(ctx, &model.PostEditRequest{
		ID: op.ID,
		PostAddRequest: model.PostAddRequest{
			Code: "dev",
			Name: "运营人员",
		},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	// 保持自身编码不算冲突
	err = ts.postService.EditPost(ctx, &model.PostEditRequest{
		ID: op.ID,
		PostAddRequest: model.PostAddRequest{
			Code: "op",
			Name: "运营专员",
		},
	})
	require.NoError(t, err, "编码不变的编辑不应该被重名校验拦截")
}

// TestDeletePostInUse 被未删除用户引用的岗位不允许删除
func TestDeletePostInUse(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	post := ts.createTestPost(t, "dev", "研发人员")
	_, err := ts.userService.AddUser(ctx, &model.UserAddRequest{
		Username: "zhangsan",
		Nickname: "张三",
		Password: "password123",
		PostIds:  []uint{post.ID},
	})
	require.NoError(t, err)

	err = ts.postService.DeletePost(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "岗位已被管理员使用,请先移除", errs.MessageOf(err))
}

// TestDeletePostReleasesCode 软删除后岗位编码立即可复用
func TestDeletePostReleasesCode(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	post := ts.createTestPost(t, "tmp", "临时岗位")
	require.NoError(t, ts.postService.DeletePost(ctx, post.ID))

	_, err := ts.postService.GetPostDetail(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "岗位已不存在!", errs.MessageOf(err))

	// 编码复用
	err = ts.postService.AddPost(ctx, &model.PostAddRequest{Code: "tmp", Name: "新临时岗位"})
	require.NoError(t, err, "软删除后的编码应该立即可复用")
}

// TestGetPostListFilter 岗位分页列表过滤(编码精确/名称模糊)
func TestGetPostListFilter(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.createTestPost(t, "dev", "研发人员")
	ts.createTestPost(t, "op", "运营人员")

	result, err := ts.postService.GetPostList(ctx, &model.PageParams{}, "dev", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)

	result, err = ts.postService.GetPostList(ctx, &model.PageParams{}, "", "人员")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)
}
