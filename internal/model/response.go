/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: API响应数据模型，统一响应封装和各业务操作的响应结构体
 * @func: 各种Response结构体定义
 */
package model

import (
	"time"
)

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int         `json:"code"`           // 响应状态码
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据，可选
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	Token string `json:"token"` // 访问令牌
}

// RoleDetailResponse 角色详情响应结构
// 在角色基础字段上附加关联菜单ID集合与成员数量
type RoleDetailResponse struct {
	ID        uint      `json:"id"`         // 角色ID
	Name      string    `json:"name"`       // 角色名称
	Remark    string    `json:"remark"`     // 备注信息
	Sort      int       `json:"sort"`       // 角色排序
	IsDisable uint8     `json:"is_disable"` // 是否禁用
	Menus     []uint    `json:"menus"`      // 关联菜单ID集合
	Member    int64     `json:"member"`     // 引用该角色的非删除用户数量
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// UserDetailResponse 用户详情响应结构
// 附加角色/部门/岗位ID集合，密码不外泄
type UserDetailResponse struct {
	ID            uint       `json:"id"`              // 用户ID
	Username      string     `json:"username"`        // 账号
	Nickname      string     `json:"nickname"`        // 昵称
	Avatar        string     `json:"avatar"`          // 头像
	Sort          int        `json:"sort"`            // 排序编号
	IsDisable     uint8      `json:"is_disable"`      // 是否禁用
	RoleIds       []uint     `json:"role_ids"`        // 角色ID集合
	DeptIds       []uint     `json:"dept_ids"`        // 部门ID集合
	PostIds       []uint     `json:"post_ids"`        // 岗位ID集合
	LastLoginIP   string     `json:"last_login_ip"`   // 最后登录IP
	LastLoginTime *time.Time `json:"last_login_time"` // 最后登录时间
	CreatedAt     time.Time  `json:"created_at"`      // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`      // 更新时间
}

// NewUserDetailResponse 由用户模型构造详情响应
func NewUserDetailResponse(user *User) *UserDetailResponse {
	resp := &UserDetailResponse{
		ID:            user.ID,
		Username:      user.Username,
		Nickname:      user.Nickname,
		Avatar:        user.Avatar,
		Sort:          user.Sort,
		IsDisable:     user.IsDisable,
		RoleIds:       make([]uint, 0, len(user.Roles)),
		DeptIds:       make([]uint, 0, len(user.Depts)),
		PostIds:       make([]uint, 0, len(user.Posts)),
		LastLoginIP:   user.LastLoginIP,
		LastLoginTime: user.LastLoginTime,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	for _, role := range user.Roles {
		resp.RoleIds = append(resp.RoleIds, role.ID)
	}
	for _, dept := range user.Depts {
		resp.DeptIds = append(resp.DeptIds, dept.ID)
	}
	for _, post := range user.Posts {
		resp.PostIds = append(resp.PostIds, post.ID)
	}
	return resp
}
