/**
 * 工具类:业务错误
 * @author: sun977
 * @date: 2025.10.14
 * @description: 统一业务错误类型，按错误种类(不存在/冲突/参数/禁止/内部)分类，处理器层据此映射HTTP状态码
 * @func: Error 结构体及构造函数
 */
package errs

import (
	"errors"
	"fmt"
)

// Kind 业务错误种类
type Kind int

const (
	KindInternal   Kind = iota // 内部错误，未预期的底层失败
	KindNotFound               // 引用的实体不存在(或用户已被软删除)
	KindConflict               // 业务规则冲突，如重名、存在依赖行
	KindValidation             // 参数不合法
	KindForbidden              // 禁止操作，如当前密码校验失败
)

// Error 业务错误
// 服务层返回的错误统一为该类型(或包装底层错误后归为 KindInternal)
type Error struct {
	Kind    Kind   // 错误种类
	Message string // 面向调用方的可读信息
	Err     error  // 底层错误，可为空
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误，支持errors.Is/As链
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 构造"不存在"错误
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict 构造"冲突"错误
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Validation 构造"参数不合法"错误
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Forbidden 构造"禁止操作"错误
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal 包装底层错误为内部错误
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf 提取错误种类，非业务错误一律归为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 提取错误的可读信息，内部错误不向外暴露细节
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "系统繁忙,请稍候再试"
}
