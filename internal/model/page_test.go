package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPageParamsNormalize 零值分页参数填充默认值
func TestPageParamsNormalize(t *testing.T) {
	p := &PageParams{}
	p.Normalize()
	assert.Equal(t, DefaultPageNo, p.PageNo)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	// 已有值不被覆盖
	p = &PageParams{PageNo: 3, PageSize: 50}
	p.Normalize()
	assert.Equal(t, 3, p.PageNo)
	assert.Equal(t, 50, p.PageSize)
}

// TestPageParamsValidate 分页参数边界校验
func TestPageParamsValidate(t *testing.T) {
	valid := []PageParams{
		{PageNo: 1, PageSize: 1},
		{PageNo: 1, PageSize: 20},
		{PageNo: 100, PageSize: 60},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "pageNo=%d pageSize=%d 应该合法", p.PageNo, p.PageSize)
	}

	invalid := []PageParams{
		{PageNo: 0, PageSize: 20},
		{PageNo: -1, PageSize: 20},
		{PageNo: 1, PageSize: 0},
		{PageNo: 1, PageSize: -5},
		{PageNo: 1, PageSize: 61},
	}
	for _, p := range invalid {
		require.Error(t, p.Validate(), "pageNo=%d pageSize=%d 应该被拒绝", p.PageNo, p.PageSize)
	}
}

// TestPageParamsOffset 偏移量计算
func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, (&PageParams{PageNo: 1, PageSize: 20}).Offset())
	assert.Equal(t, 20, (&PageParams{PageNo: 2, PageSize: 20}).Offset())
	assert.Equal(t, 40, (&PageParams{PageNo: 3, PageSize: 20}).Offset())
	assert.Equal(t, 55, (&PageParams{PageNo: 12, PageSize: 5}).Offset())
}

// TestNewPageResult 分页结果封装
func TestNewPageResult(t *testing.T) {
	params := &PageParams{PageNo: 2, PageSize: 10}
	lists := []string{"a", "b"}
	result := NewPageResult(lists, 42, params)
	assert.Equal(t, int64(42), result.Count)
	assert.Equal(t, 2, result.PageNo)
	assert.Equal(t, 10, result.PageSize)
	assert.Equal(t, lists, result.Lists)
}
