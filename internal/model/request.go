/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.10.14
 * @description: API请求数据模型，字段校验由gin binding标签在进入服务层前完成
 * @func: 各种Request结构体定义
 */
package model

// IDRequest 通用主键参数
type IDRequest struct {
	ID uint `json:"id" form:"id" binding:"required,gt=0"` // 主键，必须大于0
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=20"` // 账号，2-20字符
	Password string `json:"password" binding:"required,min=6,max=32"` // 密码，6-32字符
}

// MenuAddRequest 新增菜单请求
type MenuAddRequest struct {
	Pid       uint   `json:"pid" binding:"gte=0"`                       // 上级菜单ID，0为根
	MenuType  string `json:"menuType" binding:"required,oneof=D M B"`   // 菜单类型: [D=目录, M=菜单, B=按钮]
	MenuName  string `json:"menuName" binding:"required,min=1,max=30"`  // 菜单名称，1-30字符
	MenuIcon  string `json:"menuIcon" binding:"max=100"`                // 菜单图标
	MenuSort  int    `json:"menuSort" binding:"gte=0"`                  // 菜单排序
	Perms     string `json:"perms" binding:"max=100"`                   // 权限标识
	Paths     string `json:"paths" binding:"max=200"`                   // 路由地址
	Component string `json:"component" binding:"max=200"`               // 前端组件
	Selected  string `json:"selected" binding:"max=200"`                // 选中路径
	Params    string `json:"params" binding:"max=200"`                  // 路由参数
	IsCache   uint8  `json:"isCache" binding:"oneof=0 1"`               // 是否缓存: [0=否, 1=是]
	IsShow    uint8  `json:"isShow" binding:"oneof=0 1"`                // 是否显示: [0=否, 1=是]
	IsDisable uint8  `json:"isDisable" binding:"oneof=0 1"`             // 是否禁用: [0=否, 1=是]
}

// MenuEditRequest 编辑菜单请求
type MenuEditRequest struct {
	ID uint `json:"id" binding:"required,gt=0"` // 主键
	MenuAddRequest
}

// MenuListRequest 菜单分页列表请求
type MenuListRequest struct {
	PageParams
}

// RoleAddRequest 新增角色请求
type RoleAddRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=30"` // 角色名称，1-30字符
	Sort      int    `json:"sort" binding:"gte=0"`                 // 角色排序
	IsDisable uint8  `json:"isDisable" binding:"oneof=0 1"`        // 是否禁用: [0=否, 1=是]
	Remark    string `json:"remark" binding:"max=200"`             // 角色备注
	MenuIds   string `json:"menuIds"`                              // 关联菜单，逗号分隔的菜单ID串
}

// RoleEditRequest 编辑角色请求
type RoleEditRequest struct {
	ID uint `json:"id" binding:"required,gt=0"` // 主键
	RoleAddRequest
}

// RoleListRequest 角色分页列表请求
type RoleListRequest struct {
	PageParams
	Keyword string `json:"keyword"` // 角色名称模糊匹配关键字，可选
}

// UserAddRequest 新增用户请求
type UserAddRequest struct {
	RoleIds   []uint `json:"roleIds"`                                   // 角色ID集合，未知ID静默忽略
	DeptIds   []uint `json:"deptIds"`                                   // 部门ID集合
	PostIds   []uint `json:"postIds"`                                   // 岗位ID集合
	Username  string `json:"username" binding:"required,min=2,max=20"`  // 账号，2-20字符
	Nickname  string `json:"nickname" binding:"required,min=2,max=30"`  // 昵称，2-30字符
	Password  string `json:"password" binding:"required,min=6,max=20"`  // 密码，6-20字符
	Avatar    string `json:"avatar"`                                    // 头像，为空时使用默认头像
	Sort      int    `json:"sort" binding:"gte=0"`                      // 排序编号
	IsDisable uint8  `json:"isDisable" binding:"oneof=0 1"`             // 是否禁用: [0=否, 1=是]
}

// UserEditRequest 编辑用户请求
type UserEditRequest struct {
	ID uint `json:"id" binding:"required,gt=0"` // 主键
	UserAddRequest
}

// UserUpdateRequest 用户自助更新请求(仅头像/昵称/密码)
// Password 为空表示不修改密码；修改密码时必须提供正确的当前密码
type UserUpdateRequest struct {
	Avatar       string `json:"avatar"`                                       // 头像
	Nickname     string `json:"nickname" binding:"required,min=2,max=30"`     // 昵称，2-30字符
	Password     string `json:"password"`                                     // 新密码，服务层校验6-20位
	CurrPassword string `json:"currPassword"`                                 // 当前密码，修改密码时必填
}

// UserListRequest 用户列表请求
type UserListRequest struct {
	PageParams
	Username string `json:"username" form:"username"` // 账号模糊匹配，可选
	Nickname string `json:"nickname" form:"nickname"` // 昵称模糊匹配，可选
	Role     uint   `json:"role" form:"role"`         // 角色ID精确过滤，0表示不过滤
}

// DeptAddRequest 新增部门请求
type DeptAddRequest struct {
	Pid    uint   `json:"pid" binding:"gte=0"`                  // 上级部门ID，0为根
	Name   string `json:"name" binding:"required,min=1,max=30"` // 部门名称
	Duty   string `json:"duty" binding:"max=30"`                // 负责人名
	Mobile string `json:"mobile" binding:"max=30"`              // 联系电话
	Sort   int    `json:"sort" binding:"gte=0"`                 // 排序编号
	IsStop uint8  `json:"isStop" binding:"oneof=0 1"`           // 是否停用: [0=否, 1=是]
}

// DeptEditRequest 编辑部门请求
type DeptEditRequest struct {
	ID uint `json:"id" binding:"required,gt=0"` // 主键
	DeptAddRequest
}

// PostAddRequest 新增岗位请求
type PostAddRequest struct {
	Code    string `json:"code" binding:"required,max=30"`       // 岗位编码
	Name    string `json:"name" binding:"required,min=1,max=30"` // 岗位名称
	Remarks string `json:"remarks" binding:"max=250"`            // 岗位备注
	Sort    int    `json:"sort" binding:"gte=0"`                 // 排序编号
	IsStop  uint8  `json:"isStop" binding:"oneof=0 1"`           // 是否停用: [0=否, 1=是]
}

// PostEditRequest 编辑岗位请求
type PostEditRequest struct {
	ID uint `json:"id" binding:"required,gt=0"` // 主键
	PostAddRequest
}
