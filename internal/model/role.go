/**
 * 模型:角色模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 角色数据模型，包含角色基本信息、状态管理和菜单关联
 * @func: Role 结构体及相关方法
 */
package model

import (
	"time"
)

// Role 角色模型
// 角色采用硬删除，name 的唯一索引是重名的最终防线(并发创建时由数据库兜底)
type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`               // 角色唯一标识ID，主键自增
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`        // 角色名称，唯一索引，存储前去除首尾空格
	Remark    string    `json:"remark" gorm:"size:200"`                           // 备注信息，最大200字符
	Sort      int       `json:"sort" gorm:"default:0"`                            // 角色排序，越大越靠前
	IsDisable uint8     `json:"is_disable" gorm:"default:0;comment:是否禁用:0-否,1-是"` // 禁用标记
	CreatedAt time.Time `json:"created_at"`                                       // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间，自动管理

	// 关联关系
	Users []*User `json:"-" gorm:"many2many:user_roles;"`    // 拥有此角色的用户，多对多关系
	Menus []*Menu `json:"menus" gorm:"many2many:role_menus;"` // 角色关联的菜单，多对多关系
}

// RoleMenu 角色菜单关联表
type RoleMenu struct {
	RoleID    uint      `json:"role_id" gorm:"primaryKey"` // 角色ID，联合主键
	MenuID    uint      `json:"menu_id" gorm:"primaryKey"` // 菜单ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "roles"
}

// TableName 指定角色菜单关联表名
func (RoleMenu) TableName() string {
	return "role_menus"
}

// IsActive 检查角色是否处于启用状态
func (r *Role) IsActive() bool {
	return r.IsDisable == 0
}
