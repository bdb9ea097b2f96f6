/**
 * 模型:菜单模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 导航/权限菜单数据模型，通过pid父引用构成树形结构
 * @func: Menu 结构体及相关方法
 */
package model

import (
	"time"
)

// 菜单类型枚举: D=目录, M=菜单, B=按钮
const (
	MenuTypeDirectory = "D" // 目录
	MenuTypeMenu      = "M" // 菜单
	MenuTypeButton    = "B" // 按钮
)

// Menu 菜单模型
// pid 为 0 表示根节点；存在子节点(其他菜单的pid引用本id)时禁止删除
type Menu struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`                     // 菜单唯一标识ID，主键自增
	Pid       uint      `json:"pid" gorm:"default:0;index;comment:上级菜单"`                // 上级菜单ID，0为根
	MenuType  string    `json:"menu_type" gorm:"size:1;not null;comment:菜单类型:D-目录,M-菜单,B-按钮"` // 菜单类型
	MenuName  string    `json:"menu_name" gorm:"size:100;not null"`                     // 菜单名称，同级允许重名
	MenuIcon  string    `json:"menu_icon" gorm:"size:100"`                              // 菜单图标
	MenuSort  int       `json:"menu_sort" gorm:"default:0"`                             // 菜单排序，越大越靠前
	Perms     string    `json:"perms" gorm:"size:100"`                                  // 权限标识
	Paths     string    `json:"paths" gorm:"size:200"`                                  // 路由地址
	Component string    `json:"component" gorm:"size:200"`                              // 前端组件
	Selected  string    `json:"selected" gorm:"size:200"`                               // 选中路径
	Params    string    `json:"params" gorm:"size:200"`                                 // 路由参数
	IsCache   uint8     `json:"is_cache" gorm:"default:0;comment:是否缓存:0-否,1-是"`         // 缓存标记
	IsShow    uint8     `json:"is_show" gorm:"default:1;comment:是否显示:0-否,1-是"`          // 显示标记
	IsDisable uint8     `json:"is_disable" gorm:"default:0;comment:是否禁用:0-否,1-是"`       // 禁用标记
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间，自动管理
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间，自动管理

	// 树形结构输出字段，不落库
	Children []*Menu `json:"children,omitempty" gorm:"-"` // 子菜单集合，树装配时填充
}

// TableName 指定菜单表名
func (Menu) TableName() string {
	return "menus"
}

// IsRoot 检查菜单是否为根节点
func (m *Menu) IsRoot() bool {
	return m.Pid == 0
}

// IsValidMenuType 检查菜单类型取值是否合法
func IsValidMenuType(t string) bool {
	switch t {
	case MenuTypeDirectory, MenuTypeMenu, MenuTypeButton:
		return true
	}
	return false
}
