package authority

import (
	"encoding/json"
	"net/http"

	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/misc"
	"github.com/shaorongqiang/permission-api/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jinzhu/gorm"
)

func RegisterRoleHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/role", middleWares...)
	g.POST("/list", HandleRoleList)
	g.POST("/create", HandleRoleCreate)
	g.GET("/delete/:id", HandleRoleDelete)
	g.POST("/update", HandleRoleUpdate)
	g.GET("/get/:id", HandleRoleGet)
	g.POST("/grant", HandleRoleGrant)
}

func HandleRoleList(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page := misc.PageRequest{}
	if err := req.BindParams(&page); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	roles, err := QueryRoles(db, page.Page, page.PageSize)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, gin.H{"roles": roles}))
}

func HandleRoleCreate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	creation := RoleCreation{}
	if err := req.BindParams(&creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if _, err := CreateRole(db, &creation); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleRoleDelete(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := DeleteRole(db, id); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(json.RawMessage(c.Param("id"))))
}

func HandleRoleUpdate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := RoleUpdating{}
	if err := req.BindParams(&updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := UpdateRole(db, &updating); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleRoleGet(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	role, err := DetailRole(db, id)
	if err != nil {
		panic(err)
	}
	if role == nil {
		panic(gorm.ErrRecordNotFound)
	}
	c.JSON(http.StatusOK, misc.Success(json.RawMessage(c.Param("id")), gin.H{"role": role}))
}

func HandleRoleGrant(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	replacing := RoleMenusReplacing{}
	if err := req.BindParams(&replacing); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := ReplaceRoleMenus(db, replacing.RoleID, replacing.MenuIDs); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}
