/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 通用的工具包
 * @func:
 */

package utils

import (
	"context"
	"strconv"
	"strings"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

// ContextKeyClientIP 标准上下文中存储客户端IP的统一键
const ContextKeyClientIP ContextKey = "client_ip"

// ContextKeyUserID 标准上下文中存储当前用户ID的统一键
// 来源：JWT中间件校验通过后写入，服务层读取用于超级管理员判定等
const ContextKeyUserID ContextKey = "user_id"

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 如果不存在或类型不匹配，返回空字符串
func GetClientIPFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyClientIP)
	if ip, ok := v.(string); ok {
		return ip
	}
	return ""
}

// GetUserIDFromContext 从标准上下文读取当前用户ID（统一键）
// 如果不存在或类型不匹配，返回0
func GetUserIDFromContext(ctx context.Context) uint {
	v := ctx.Value(ContextKeyUserID)
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}

// ParseUintList 解析逗号分隔的ID串为uint切片
// 空串、空白段和非数字段被静默跳过，如 "1, 2,,x,3" -> [1 2 3]
func ParseUintList(s string) []uint {
	ids := make([]uint, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(n))
	}
	return ids
}
