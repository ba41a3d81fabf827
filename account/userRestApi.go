package account

import (
	"encoding/json"
	"net/http"

	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/misc"
	"github.com/shaorongqiang/permission-api/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jinzhu/gorm"
)

func RegisterUserHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/user", middleWares...)
	g.POST("/list", HandleUserList)
	g.POST("/create", HandleUserCreate)
	g.GET("/delete/:id", HandleUserDelete)
	g.POST("/update", HandleUserUpdate)
	g.GET("/get/:id", HandleUserGet)
	g.POST("/grant", HandleUserGrant)
}

func HandleUserList(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page := misc.PageRequest{}
	if err := req.BindParams(&page); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	users, err := QueryUsers(db, page.Page, page.PageSize)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, gin.H{"users": users}))
}

func HandleUserCreate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	creation := UserCreation{}
	if err := req.BindParams(&creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if _, err := CreateUser(db, &creation); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleUserDelete(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := DeleteUser(db, id); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(json.RawMessage(c.Param("id"))))
}

func HandleUserUpdate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := UserUpdating{}
	if err := req.BindParams(&updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := UpdateUser(db, &updating); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleUserGet(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	info, err := DetailUser(db, id)
	if err != nil {
		panic(err)
	}
	if info == nil {
		panic(gorm.ErrRecordNotFound)
	}
	c.JSON(http.StatusOK, misc.Success(json.RawMessage(c.Param("id")), gin.H{"user": info}))
}

func HandleUserGrant(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	replacing := authority.UserRolesReplacing{}
	if err := req.BindParams(&replacing); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := authority.ReplaceUserRoles(db, replacing.UserID, replacing.RoleIDs); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}
