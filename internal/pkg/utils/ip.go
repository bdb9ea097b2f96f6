package utils

import (
	"net"
	"strings"
)

// NormalizeIP 归一化客户端IP，供访问日志和登录记录使用：
// X-Forwarded-For 列表取最左侧一项；host:port 和 [ipv6]:port 去掉端口；
// IPv4映射的IPv6地址(::ffff:192.0.2.1)还原为点分IPv4；
// 解析失败的输入原样返回
func NormalizeIP(input string) string {
	if input == "" {
		return ""
	}

	ip := strings.TrimSpace(strings.Split(input, ",")[0])

	if h, _, err := net.SplitHostPort(ip); err == nil {
		ip = h
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}

	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}

	return parsed.String()
}
