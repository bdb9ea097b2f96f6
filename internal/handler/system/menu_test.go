package system

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goadmin/internal/model"
	"goadmin/internal/repository/mysql"
	systemservice "goadmin/internal/service/system"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupMenuRouter 装配SQLite内存库上的菜单路由
func setupMenuRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Menu{}, &model.Role{}, &model.RoleMenu{}))

	menuRepo := mysql.NewMenuRepository(db)
	roleRepo := mysql.NewRoleRepository(db)
	menuService := systemservice.NewMenuService(menuRepo, roleRepo, nil)
	menuHandler := NewMenuHandler(menuService)

	r := gin.New()
	menu := r.Group("/api/system/menu")
	{
		menu.POST("/add", menuHandler.Add)
		menu.POST("/edit", menuHandler.Edit)
		menu.POST("/del", menuHandler.Delete)
		menu.POST("/detail", menuHandler.Detail)
		menu.POST("/list", menuHandler.List)
	}
	return r, db
}

// postJSON 发送JSON请求并返回记录器
func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestMenuHandlerAddAndDetail 创建菜单后可查询详情
func TestMenuHandlerAddAndDetail(t *testing.T) {
	r, _ := setupMenuRouter(t)

	w := postJSON(r, "/api/system/menu/add", map[string]any{
		"menuType": "M",
		"menuName": "用户管理",
		"isShow":   1,
	})
	assert.Equal(t, http.StatusOK, w.Code, "创建菜单应该返回200")

	var resp struct {
		Code int        `json:"code"`
		Data model.Menu `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)

	w = postJSON(r, "/api/system/menu/detail", map[string]any{"id": resp.Data.ID})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "用户管理")
}

// TestMenuHandlerInvalidParams 参数校验失败返回400
func TestMenuHandlerInvalidParams(t *testing.T) {
	r, _ := setupMenuRouter(t)

	// menuType 非法枚举
	w := postJSON(r, "/api/system/menu/add", map[string]any{
		"menuType": "X",
		"menuName": "非法菜单",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "非法菜单类型应该返回400")

	// 缺少id
	w = postJSON(r, "/api/system/menu/del", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestMenuHandlerErrorStatusMapping 业务错误映射HTTP状态码
func TestMenuHandlerErrorStatusMapping(t *testing.T) {
	r, db := setupMenuRouter(t)

	// 不存在的菜单 -> 404
	w := postJSON(r, "/api/system/menu/detail", map[string]any{"id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "菜单已不存在!")

	// 有子菜单的删除 -> 409
	parent := &model.Menu{MenuType: model.MenuTypeMenu, MenuName: "父菜单", IsShow: 1}
	require.NoError(t, db.Create(parent).Error)
	child := &model.Menu{Pid: parent.ID, MenuType: model.MenuTypeMenu, MenuName: "子菜单", IsShow: 1}
	require.NoError(t, db.Create(child).Error)

	w = postJSON(r, "/api/system/menu/del", map[string]any{"id": parent.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "请先删除子菜单再操作!")

	// 上级指向自己的编辑 -> 400
	w = postJSON(r, "/api/system/menu/edit", map[string]any{
		"id": parent.ID, "pid": parent.ID, "menuType": "M", "menuName": "父菜单",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "上级菜单不能为自己!")
}

// TestMenuHandlerListPageSizeLimit 分页上限校验经由接口生效
func TestMenuHandlerListPageSizeLimit(t *testing.T) {
	r, _ := setupMenuRouter(t)

	w := postJSON(r, "/api/system/menu/list", map[string]any{"pageNo": 1, "pageSize": 61})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/system/menu/list", map[string]any{})
	assert.Equal(t, http.StatusOK, w.Code, "缺省分页参数应该按默认值处理")
}
