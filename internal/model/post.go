/**
 * 模型:岗位模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 岗位数据模型，与用户多对多关联
 * @func: Post 结构体及相关方法
 */
package model

import (
	"time"
)

// Post 岗位模型
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`            // 岗位唯一标识ID，主键自增
	Code      string    `json:"code" gorm:"size:30;not null"`                  // 岗位编码
	Name      string    `json:"name" gorm:"size:30;not null"`                  // 岗位名称
	Remarks   string    `json:"remarks" gorm:"size:250"`                       // 岗位备注
	Sort      int       `json:"sort" gorm:"default:0"`                         // 排序编号，越大越靠前
	IsStop    uint8     `json:"is_stop" gorm:"default:0;comment:是否停用:0-否,1-是"` // 停用标记
	IsDelete  uint8     `json:"-" gorm:"default:0;index;comment:是否删除:0-否,1-是"` // 软删除标记
	CreatedAt time.Time `json:"created_at"`                                    // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                    // 更新时间，自动管理
}

// TableName 指定岗位表名
func (Post) TableName() string {
	return "posts"
}
