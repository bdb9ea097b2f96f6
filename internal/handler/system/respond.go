/*
 * @author: sun977
 * @date: 2025.10.14
 * @description: 处理器层统一响应辅助，业务错误种类映射HTTP状态码
 * @func: RespondSuccess / RespondError / RespondInvalidParams
 */
package system

import (
	"net/http"

	"goadmin/internal/model"
	"goadmin/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// statusOfKind 业务错误种类到HTTP状态码的映射
func statusOfKind(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondSuccess 写入成功响应
func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// RespondError 根据业务错误种类写入错误响应
// 内部错误的细节不外泄，统一返回兜底文案
func RespondError(c *gin.Context, err error) {
	status := statusOfKind(errs.KindOf(err))
	c.JSON(status, model.APIResponse{
		Code:    status,
		Message: errs.MessageOf(err),
	})
}

// RespondInvalidParams 写入参数校验失败响应(gin binding错误)
func RespondInvalidParams(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.APIResponse{
		Code:    http.StatusBadRequest,
		Message: "参数错误: " + err.Error(),
	})
}
