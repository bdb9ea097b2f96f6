package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKindOf 错误种类提取
func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("角色已不存在!")))
	assert.Equal(t, KindConflict, KindOf(Conflict("角色名称已存在!")))
	assert.Equal(t, KindValidation, KindOf(Validation("参数不合法")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("当前密码不正确!")))
	assert.Equal(t, KindInternal, KindOf(Internal("查询失败", errors.New("db down"))))

	// 非业务错误归为内部错误
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

// TestKindOfWrapped 包装后的业务错误仍可提取种类
func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("角色名称已存在!"))
	assert.Equal(t, KindConflict, KindOf(err))
}

// TestMessageOf 可读信息提取与内部错误掩蔽
func TestMessageOf(t *testing.T) {
	assert.Equal(t, "角色已不存在!", MessageOf(NotFound("角色已不存在!")))
	assert.Equal(t, "当前密码不正确!", MessageOf(Forbidden("当前密码不正确!")))

	// 内部错误细节不向外暴露
	assert.Equal(t, "系统繁忙,请稍候再试", MessageOf(Internal("查询失败", errors.New("dsn: user:pass@tcp"))))
	assert.Equal(t, "系统繁忙,请稍候再试", MessageOf(errors.New("plain error")))
}

// TestErrorUnwrap 底层错误支持errors.Is链
func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("record locked")
	err := Internal("更新失败", inner)
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "更新失败")
	assert.Contains(t, err.Error(), "record locked")

	// 无底层错误时Error只返回消息本身
	assert.Equal(t, "角色名称已存在!", Conflict("角色名称已存在!").Error())
}
