package utils

import (
	"strings"
)

// DefaultAvatarPath 未提供头像时使用的默认头像相对路径
const DefaultAvatarPath = "/api/static/backend_avatar.png"

// ToRelativeURL 将绝对URL转为相对路径
// 转前: https://127.0.0.1/api/upload/11.png
// 转后: /api/upload/11.png
// 非http(s)开头的输入视为已是相对路径，原样返回
func ToRelativeURL(url string) string {
	if url == "" || !strings.HasPrefix(url, "http") {
		return url
	}
	// 跳过 scheme://host 部分，从host之后的第一个 / 截取
	idx := strings.Index(url, "://")
	if idx < 0 {
		return url
	}
	rest := url[idx+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return ""
	}
	return rest[slash:]
}

// AvatarOrDefault 头像为空时回落到默认头像，否则归一化为相对路径
func AvatarOrDefault(avatar string) string {
	if avatar == "" {
		return DefaultAvatarPath
	}
	return ToRelativeURL(avatar)
}
