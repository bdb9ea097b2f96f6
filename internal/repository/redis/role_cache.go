/**
 * 角色缓存层:角色菜单缓存数据访问
 * @author: sun977
 * @date: 2025.10.14
 * @description: 角色菜单ID集合的Redis缓存(适合多实例部署)，角色或菜单变更时失效
 * @func: 单纯数据访问,不应该包含业务逻辑
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// roleMenuKeyPrefix 角色菜单缓存键前缀[KEY:role:menus:{roleID}]
const roleMenuKeyPrefix = "role:menus:"

// RoleCacheRepository 角色菜单缓存存储库
type RoleCacheRepository struct {
	client *redis.Client
}

// NewRoleCacheRepository 创建角色缓存存储库实例
func NewRoleCacheRepository(client *redis.Client) *RoleCacheRepository {
	return &RoleCacheRepository{
		client: client,
	}
}

// getRoleMenuKey 生成角色菜单缓存键
func (r *RoleCacheRepository) getRoleMenuKey(roleID uint) string {
	return fmt.Sprintf("%s%d", roleMenuKeyPrefix, roleID)
}

// StoreRoleMenuIDs 缓存角色关联的菜单ID集合
func (r *RoleCacheRepository) StoreRoleMenuIDs(ctx context.Context, roleID uint, menuIDs []uint, expiration time.Duration) error {
	// 序列化菜单ID集合
	data, err := json.Marshal(menuIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal menu ids: %w", err)
	}

	key := r.getRoleMenuKey(roleID)
	err = r.client.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to store role menu cache: %w", err)
	}

	return nil
}

// GetRoleMenuIDs 获取缓存的角色菜单ID集合
// 缓存未命中时返回 (nil, false, nil)，由业务层回源数据库
func (r *RoleCacheRepository) GetRoleMenuIDs(ctx context.Context, roleID uint) ([]uint, bool, error) {
	key := r.getRoleMenuKey(roleID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get role menu cache: %w", err)
	}

	var menuIDs []uint
	err = json.Unmarshal([]byte(data), &menuIDs)
	if err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal menu ids: %w", err)
	}

	return menuIDs, true, nil
}

// DeleteRoleMenuIDs 删除角色菜单缓存
// 角色菜单关联变更、角色删除时调用
func (r *RoleCacheRepository) DeleteRoleMenuIDs(ctx context.Context, roleID uint) error {
	key := r.getRoleMenuKey(roleID)

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete role menu cache: %w", err)
	}

	return nil
}

// DeleteAllRoleMenuIDs 删除全部角色菜单缓存
// 菜单自身增删改会影响所有角色的可见集合，统一失效
func (r *RoleCacheRepository) DeleteAllRoleMenuIDs(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, roleMenuKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan role menu cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete role menu cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}
