/**
 * 模型:分页模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 通用分页参数与分页结果封装，所有列表接口共用
 * @func: PageParams / PageResult 结构体及相关方法
 */
package model

import (
	"goadmin/internal/pkg/errs"
)

// 分页默认值与上限
const (
	DefaultPageNo   = 1  // 默认页码
	DefaultPageSize = 20 // 默认每页条数
	MaxPageSize     = 60 // 每页条数上限
)

// PageParams 分页查询参数
// 页码从1开始，pageSize取值区间(0,60]
type PageParams struct {
	PageNo   int `json:"pageNo" form:"pageNo"`     // 页码，>=1
	PageSize int `json:"pageSize" form:"pageSize"` // 每页条数，(0,60]
}

// Normalize 填充缺省分页参数(零值按默认值处理)
func (p *PageParams) Normalize() {
	if p.PageNo == 0 {
		p.PageNo = DefaultPageNo
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
}

// Validate 校验分页参数合法性
func (p *PageParams) Validate() error {
	if p.PageNo < 1 {
		return errs.Validation("页码必须大于等于1")
	}
	if p.PageSize <= 0 || p.PageSize > MaxPageSize {
		return errs.Validation("每页条数必须在1~60之间")
	}
	return nil
}

// Offset 计算数据库查询偏移量
func (p *PageParams) Offset() int {
	return (p.PageNo - 1) * p.PageSize
}

// PageResult 分页结果封装
type PageResult struct {
	Count    int64       `json:"count"`    // 结果总数
	PageNo   int         `json:"pageNo"`   // 当前页码
	PageSize int         `json:"pageSize"` // 每页条数
	Lists    interface{} `json:"lists"`    // 当前页数据集合
}

// NewPageResult 构造分页结果
func NewPageResult(lists interface{}, count int64, params *PageParams) *PageResult {
	return &PageResult{
		Count:    count,
		PageNo:   params.PageNo,
		PageSize: params.PageSize,
		Lists:    lists,
	}
}
