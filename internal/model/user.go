/**
 * 模型:管理员用户模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: 后台管理员数据模型，包含账号信息、状态管理和角色/部门/岗位关联关系
 * @func: User 结构体及相关方法
 */
package model

import (
	"time"
)

// User 管理员用户模型
// 用户采用软删除(IsDelete标记)，删除后行和关联关系均保留
type User struct {
	ID            uint       `json:"id" gorm:"primaryKey;autoIncrement"`                // 用户唯一标识ID，主键自增
	Username      string     `json:"username" gorm:"uniqueIndex;not null;size:64"`      // 用户账号，唯一索引兜底并发创建；软删除时重命名释放账号
	Nickname      string     `json:"nickname" gorm:"size:32"`                           // 用户昵称，最大32字符
	Password      string     `json:"-" gorm:"not null;size:255"`                        // 用户密码，argon2id哈希存储，不在JSON中返回
	Avatar        string     `json:"avatar" gorm:"size:200"`                            // 用户头像，相对路径
	Sort          int        `json:"sort" gorm:"default:0"`                             // 排序编号，越大越靠前
	IsDisable     uint8      `json:"is_disable" gorm:"default:0;comment:是否禁用:0-否,1-是"`  // 禁用标记
	IsDelete      uint8      `json:"-" gorm:"default:0;index;comment:是否删除:0-否,1-是"`     // 软删除标记，不物理删除行
	LastLoginIP   string     `json:"last_login_ip" gorm:"size:45;comment:最后登录IP"`       // 最后登录IP地址，支持IPv6
	LastLoginTime *time.Time `json:"last_login_time" gorm:"comment:最后登录时间"`             // 最后登录时间，可为空
	CreatedAt     time.Time  `json:"created_at"`                                        // 创建时间，自动管理
	UpdatedAt     time.Time  `json:"updated_at"`                                        // 更新时间，自动管理

	// 关联关系
	Roles []*Role `json:"roles" gorm:"many2many:user_roles;"` // 用户角色，多对多关系
	Depts []*Dept `json:"depts" gorm:"many2many:user_depts;"` // 用户部门，多对多关系
	Posts []*Post `json:"posts" gorm:"many2many:user_posts;"` // 用户岗位，多对多关系
}

// SuperAdminID 超级管理员的固定用户ID，菜单可见性过滤对其不生效
const SuperAdminID uint = 1

// UserRole 用户角色关联表
type UserRole struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"` // 用户ID，联合主键
	RoleID    uint      `json:"role_id" gorm:"primaryKey"` // 角色ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
}

// UserDept 用户部门关联表
type UserDept struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"` // 用户ID，联合主键
	DeptID    uint      `json:"dept_id" gorm:"primaryKey"` // 部门ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
}

// UserPost 用户岗位关联表
type UserPost struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"` // 用户ID，联合主键
	PostID    uint      `json:"post_id" gorm:"primaryKey"` // 岗位ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
}

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}

// TableName 指定用户角色关联表名
func (UserRole) TableName() string {
	return "user_roles"
}

// TableName 指定用户部门关联表名
func (UserDept) TableName() string {
	return "user_depts"
}

// TableName 指定用户岗位关联表名
func (UserPost) TableName() string {
	return "user_posts"
}

// IsSuperAdmin 检查用户是否为超级管理员
func (u *User) IsSuperAdmin() bool {
	return u.ID == SuperAdminID
}

// IsActive 检查用户是否处于可用状态(未禁用且未删除)
func (u *User) IsActive() bool {
	return u.IsDisable == 0 && u.IsDelete == 0
}

// HasRole 检查用户是否拥有指定角色
func (u *User) HasRole(roleID uint) bool {
	for _, role := range u.Roles {
		if role.ID == roleID {
			return true
		}
	}
	return false
}
