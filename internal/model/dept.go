/**
 * 模型:部门模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 部门数据模型，通过pid构成层级，与用户多对多关联
 * @func: Dept 结构体及相关方法
 */
package model

import (
	"time"
)

// Dept 部门模型
type Dept struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`               // 部门唯一标识ID，主键自增
	Pid       uint      `json:"pid" gorm:"default:0;index;comment:上级部门"`          // 上级部门ID，0为根
	Name      string    `json:"name" gorm:"size:100;not null"`                    // 部门名称
	Duty      string    `json:"duty" gorm:"size:30"`                              // 负责人名
	Mobile    string    `json:"mobile" gorm:"size:30"`                            // 联系电话
	Sort      int       `json:"sort" gorm:"default:0"`                            // 排序编号，越大越靠前
	IsStop    uint8     `json:"is_stop" gorm:"default:0;comment:是否停用:0-否,1-是"`    // 停用标记
	IsDelete  uint8     `json:"-" gorm:"default:0;index;comment:是否删除:0-否,1-是"`    // 软删除标记
	CreatedAt time.Time `json:"created_at"`                                       // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间，自动管理

	// 树形结构输出字段，不落库
	Children []*Dept `json:"children,omitempty" gorm:"-"` // 子部门集合，树装配时填充
}

// TableName 指定部门表名
func (Dept) TableName() string {
	return "depts"
}
