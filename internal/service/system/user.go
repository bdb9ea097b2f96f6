/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 用户业务逻辑(管理员增删改查与自助资料更新)
 * @func:
 * 1.创建用户(含角色/部门/岗位关联)
 * 2.编辑用户(全量替换关联)
 * 3.自助更新(头像/昵称/密码)
 * 4.用户列表/详情/删除/禁用
 */

//  用户管理:
//  	AddUser - 创建用户(事务:查重+插入+关联)
//  	EditUser - 编辑用户(事务:更新+替换关联)
//  	UpdateUser - 自助更新资料(密码修改需校验当前密码)
//  	GetUserList - 分页获取用户列表(账号/昵称/角色过滤)
//  	GetUserDetail - 用户详情
//  	DeleteUser - 软删除用户(行和关联保留)
//  	DisableUser - 切换用户禁用状态

package system

import (
	"context"
	"errors"
	"fmt"

	"goadmin/internal/model"
	"goadmin/internal/pkg/auth"
	"goadmin/internal/pkg/errs"
	"goadmin/internal/pkg/logger"
	"goadmin/internal/pkg/utils"
	"goadmin/internal/repository/mysql"

	"gorm.io/gorm"
)

// UserService 用户服务
// 负责管理员用户相关的业务逻辑，多行写操作全部走事务
type UserService struct {
	userRepo        *mysql.UserRepository // 用户数据仓库
	roleRepo        *mysql.RoleRepository // 角色数据仓库(校验角色关联)
	deptRepo        *mysql.DeptRepository // 部门数据仓库(校验部门关联)
	postRepo        *mysql.PostRepository // 岗位数据仓库(校验岗位关联)
	passwordManager *auth.PasswordManager // 密码管理器
}

// NewUserService 创建新的用户服务实例
func NewUserService(
	userRepo *mysql.UserRepository,
	roleRepo *mysql.RoleRepository,
	deptRepo *mysql.DeptRepository,
	postRepo *mysql.PostRepository,
	passwordManager *auth.PasswordManager,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		deptRepo:        deptRepo,
		postRepo:        postRepo,
		passwordManager: passwordManager,
	}
}

// AddUser 创建用户
// 账号在未删除用户间查重；密码argon2id哈希存储；头像为空时使用默认头像，
// 绝对URL归一为相对路径；角色/部门/岗位关联在同一事务内写入，未知ID静默丢弃
func (s *UserService) AddUser(ctx context.Context, req *model.UserAddRequest) (*model.User, error) {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return nil, errs.Validation("创建用户请求不能为空")
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username, 0)
	if err != nil {
		return nil, errs.Internal("查询用户失败", err)
	}
	if exists {
		return nil, errs.Conflict("账号已存在换一个吧!")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Internal("密码加密失败", err)
	}

	roleIDs, deptIDs, postIDs, err := s.resolveAssociations(ctx, req.RoleIds, req.DeptIds, req.PostIds)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  req.Username,
		Nickname:  req.Nickname,
		Password:  hashedPassword,
		Avatar:    utils.AvatarOrDefault(req.Avatar),
		Sort:      req.Sort,
		IsDisable: req.IsDisable,
	}

	tx := s.userRepo.BeginTx(ctx)
	if tx.Error != nil {
		return nil, errs.Internal("开启事务失败", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.userRepo.CreateUserWithTx(ctx, tx, user); err != nil {
		tx.Rollback()
		// 唯一索引兜底并发穿过预检查的重名插入
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("账号已存在换一个吧!")
		}
		return nil, errs.Internal("创建用户失败", err)
	}

	if err := s.writeAssociations(ctx, tx, user.ID, roleIDs, deptIDs, postIDs); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, errs.Internal("提交事务失败", err)
	}

	logger.LogBusinessOperation("create_user", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "User created successfully", map[string]interface{}{
		"user_id":   user.ID,
		"username":  user.Username,
		"timestamp": logger.NowFormatted(),
	})

	return user, nil
}

// EditUser 编辑用户
// 账号查重排除自身；密码非空时重新哈希；关联集合全删后全插，单事务完成
func (s *UserService) EditUser(ctx context.Context, req *model.UserEditRequest) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("编辑用户请求不能为空")
	}

	user, err := s.userRepo.GetUserByID(ctx, req.ID)
	if err != nil {
		return errs.Internal("查询用户失败", err)
	}
	if user == nil {
		return errs.NotFound("账号已不存在!")
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username, user.ID)
	if err != nil {
		return errs.Internal("查询用户失败", err)
	}
	if exists {
		return errs.Conflict("账号已存在换一个吧!")
	}

	roleIDs, deptIDs, postIDs, err := s.resolveAssociations(ctx, req.RoleIds, req.DeptIds, req.PostIds)
	if err != nil {
		return err
	}

	user.Username = req.Username
	user.Nickname = req.Nickname
	user.Avatar = utils.AvatarOrDefault(req.Avatar)
	user.Sort = req.Sort
	user.IsDisable = req.IsDisable
	if req.Password != "" {
		hashedPassword, err := s.passwordManager.HashPassword(req.Password)
		if err != nil {
			return errs.Internal("密码加密失败", err)
		}
		user.Password = hashedPassword
	}
	// Save会连带写关联字段，清空避免gorm按脏关联触发upsert
	user.Roles = nil
	user.Depts = nil
	user.Posts = nil

	tx := s.userRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.userRepo.UpdateUserWithTx(ctx, tx, user); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("账号已存在换一个吧!")
		}
		return errs.Internal("更新用户失败", err)
	}

	if err := s.userRepo.DeleteUserRolesByUserID(ctx, tx, user.ID); err != nil {
		tx.Rollback()
		return errs.Internal("删除用户角色关联失败", err)
	}
	if err := s.userRepo.DeleteUserDeptsByUserID(ctx, tx, user.ID); err != nil {
		tx.Rollback()
		return errs.Internal("删除用户部门关联失败", err)
	}
	if err := s.userRepo.DeleteUserPostsByUserID(ctx, tx, user.ID); err != nil {
		tx.Rollback()
		return errs.Internal("删除用户岗位关联失败", err)
	}

	if err := s.writeAssociations(ctx, tx, user.ID, roleIDs, deptIDs, postIDs); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	logger.LogBusinessOperation("update_user", utils.GetUserIDFromContext(ctx), "", clientIP, "success", "User updated successfully", map[string]interface{}{
		"user_id":   user.ID,
		"username":  user.Username,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// UpdateUser 自助更新资料(头像/昵称/密码)
// 修改密码时必须提供正确的当前密码，新密码长度6-20位；
// 当前密码校验失败时存量哈希保持不变
func (s *UserService) UpdateUser(ctx context.Context, req *model.UserUpdateRequest, userID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	if req == nil {
		return errs.Validation("更新用户请求不能为空")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return errs.Internal("查询用户失败", err)
	}
	if user == nil {
		return errs.NotFound("账号已不存在!")
	}

	if req.Password != "" {
		if len(req.Password) < 6 || len(req.Password) > 20 {
			return errs.Validation("密码长度需在6到20位之间!")
		}
		if req.CurrPassword == "" {
			return errs.Validation("请输入当前密码!")
		}
		ok, err := s.passwordManager.VerifyPassword(req.CurrPassword, user.Password)
		if err != nil {
			return errs.Internal("密码校验失败", err)
		}
		if !ok {
			return errs.Forbidden("当前密码不正确!")
		}
		hashedPassword, err := s.passwordManager.HashPassword(req.Password)
		if err != nil {
			return errs.Internal("密码加密失败", err)
		}
		user.Password = hashedPassword
	}

	user.Nickname = req.Nickname
	user.Avatar = utils.AvatarOrDefault(req.Avatar)
	user.Roles = nil
	user.Depts = nil
	user.Posts = nil

	tx := s.userRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	if err := s.userRepo.UpdateUserWithTx(ctx, tx, user); err != nil {
		tx.Rollback()
		return errs.Internal("更新用户失败", err)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	logger.LogBusinessOperation("update_profile", userID, user.Username, clientIP, "success", "Profile updated successfully", map[string]interface{}{
		"user_id":          userID,
		"password_changed": req.Password != "",
		"timestamp":        logger.NowFormatted(),
	})

	return nil
}

// GetUserList 分页获取用户列表
// 支持账号/昵称模糊匹配和角色精确过滤，软删除用户不可见
func (s *UserService) GetUserList(ctx context.Context, req *model.UserListRequest) (*model.PageResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.GetUserList(ctx, req.Offset(), req.PageSize, req.Username, req.Nickname, req.Role)
	if err != nil {
		return nil, errs.Internal("查询用户列表失败", err)
	}

	details := make([]*model.UserDetailResponse, 0, len(users))
	for _, user := range users {
		details = append(details, model.NewUserDetailResponse(user))
	}

	return model.NewPageResult(details, total, &req.PageParams), nil
}

// GetUserDetail 获取用户详情(含角色/部门/岗位关联)
func (s *UserService) GetUserDetail(ctx context.Context, userID uint) (*model.UserDetailResponse, error) {
	user, err := s.userRepo.GetUserWithAssociations(ctx, userID)
	if err != nil {
		return nil, errs.Internal("查询用户失败", err)
	}
	if user == nil {
		return nil, errs.NotFound("账号已不存在!")
	}
	return model.NewUserDetailResponse(user), nil
}

// DeleteUser 软删除用户
// 置删除标记并重命名账号释放唯一索引占位，行和关联行均保留；
// 不允许删除自己和超级管理员
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	operatorID := utils.GetUserIDFromContext(ctx)

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return errs.Internal("查询用户失败", err)
	}
	if user == nil {
		return errs.NotFound("账号已不存在!")
	}
	if user.IsSuperAdmin() {
		return errs.Forbidden("系统管理员不允许删除!")
	}
	if operatorID != 0 && operatorID == userID {
		return errs.Forbidden("不能删除自己!")
	}

	tx := s.userRepo.BeginTx(ctx)
	if tx.Error != nil {
		return errs.Internal("开启事务失败", tx.Error)
	}
	// 重命名为带ID后缀的占位账号，原账号立即可复用
	releasedUsername := fmt.Sprintf("%s#deleted_%d", user.Username, user.ID)
	if err := s.userRepo.SoftDeleteUserWithTx(ctx, tx, userID, releasedUsername); err != nil {
		tx.Rollback()
		return errs.Internal("删除用户失败", err)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return errs.Internal("提交事务失败", err)
	}

	logger.LogBusinessOperation("delete_user", operatorID, "", clientIP, "success", "User deleted successfully", map[string]interface{}{
		"user_id":   userID,
		"username":  user.Username,
		"timestamp": logger.NowFormatted(),
	})

	return nil
}

// DisableUser 切换用户禁用状态
// 不允许禁用自己
func (s *UserService) DisableUser(ctx context.Context, userID uint) error {
	clientIP := utils.GetClientIPFromContext(ctx)
	operatorID := utils.GetUserIDFromContext(ctx)

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return errs.Internal("查询用户失败", err)
	}
	if user == nil {
		return errs.NotFound("账号已不存在!")
	}
	if operatorID != 0 && operatorID == userID {
		return errs.Forbidden("不能禁用自己!")
	}

	newStatus := uint8(1)
	if user.IsDisable == 1 {
		newStatus = 0
	}
	err = s.userRepo.UpdateUserFields(ctx, userID, map[string]interface{}{
		"is_disable": newStatus,
	})
	if err != nil {
		return errs.Internal("更新用户状态失败", err)
	}

	logger.LogBusinessOperation("disable_user", operatorID, "", clientIP, "success", "User disable flag toggled", map[string]interface{}{
		"user_id":    userID,
		"username":   user.Username,
		"is_disable": newStatus,
		"timestamp":  logger.NowFormatted(),
	})

	return nil
}

// resolveAssociations 解析角色/部门/岗位ID集合，未知ID静默丢弃
func (s *UserService) resolveAssociations(ctx context.Context, roleIDs, deptIDs, postIDs []uint) ([]uint, []uint, []uint, error) {
	validRoles := make([]uint, 0, len(roleIDs))
	for _, id := range roleIDs {
		role, err := s.roleRepo.GetRoleByID(ctx, id)
		if err != nil {
			return nil, nil, nil, errs.Internal("查询角色失败", err)
		}
		if role != nil {
			validRoles = append(validRoles, id)
		}
	}

	validDepts := make([]uint, 0, len(deptIDs))
	for _, id := range deptIDs {
		dept, err := s.deptRepo.GetDeptByID(ctx, id)
		if err != nil {
			return nil, nil, nil, errs.Internal("查询部门失败", err)
		}
		if dept != nil {
			validDepts = append(validDepts, id)
		}
	}

	validPosts := make([]uint, 0, len(postIDs))
	for _, id := range postIDs {
		post, err := s.postRepo.GetPostByID(ctx, id)
		if err != nil {
			return nil, nil, nil, errs.Internal("查询岗位失败", err)
		}
		if post != nil {
			validPosts = append(validPosts, id)
		}
	}

	return validRoles, validDepts, validPosts, nil
}

// writeAssociations 在事务内写入用户的角色/部门/岗位关联
func (s *UserService) writeAssociations(ctx context.Context, tx *gorm.DB, userID uint, roleIDs, deptIDs, postIDs []uint) error {
	if err := s.userRepo.AddUserRolesWithTx(ctx, tx, userID, roleIDs); err != nil {
		return errs.Internal("写入用户角色关联失败", err)
	}
	if err := s.userRepo.AddUserDeptsWithTx(ctx, tx, userID, deptIDs); err != nil {
		return errs.Internal("写入用户部门关联失败", err)
	}
	if err := s.userRepo.AddUserPostsWithTx(ctx, tx, userID, postIDs); err != nil {
		return errs.Internal("写入用户岗位关联失败", err)
	}
	return nil
}
