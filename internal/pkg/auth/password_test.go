package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashAndVerifyPassword 哈希与校验往返
func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(nil)

	hash, err := pm.HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "哈希应该是argon2id编码格式")
	assert.NotContains(t, hash, "password123", "哈希不应该包含明文")

	ok, err := pm.VerifyPassword("password123", hash)
	require.NoError(t, err)
	assert.True(t, ok, "正确密码应该校验通过")

	ok, err = pm.VerifyPassword("wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, ok, "错误密码应该校验失败")
}

// TestHashPasswordEmptyRejected 空密码拒绝哈希
func TestHashPasswordEmptyRejected(t *testing.T) {
	pm := NewPasswordManager(nil)
	_, err := pm.HashPassword("")
	require.Error(t, err)
}

// TestHashPasswordSaltRandomness 同一密码两次哈希结果不同
func TestHashPasswordSaltRandomness(t *testing.T) {
	pm := NewPasswordManager(nil)

	h1, err := pm.HashPassword("password123")
	require.NoError(t, err)
	h2, err := pm.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "随机盐应该使两次哈希不同")

	// 两个哈希都能校验通过
	for _, h := range []string{h1, h2} {
		ok, err := pm.VerifyPassword("password123", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

// TestVerifyPasswordMalformedHash 非法哈希格式返回错误
func TestVerifyPasswordMalformedHash(t *testing.T) {
	pm := NewPasswordManager(nil)
	_, err := pm.VerifyPassword("password123", "not-a-valid-hash")
	require.Error(t, err)
}
