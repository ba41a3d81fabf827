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

func RegisterMenuHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/menu", middleWares...)
	g.POST("/list", HandleMenuList)
	g.POST("/create", HandleMenuCreate)
	g.GET("/delete/:id", HandleMenuDelete)
	g.POST("/update", HandleMenuUpdate)
	g.GET("/get/:id", HandleMenuGet)
}

func HandleMenuList(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page := misc.PageRequest{}
	if err := req.BindParams(&page); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	menus, err := QueryMenus(db, page.Page, page.PageSize)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, gin.H{"menus": menus}))
}

func HandleMenuCreate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	creation := MenuCreation{}
	if err := req.BindParams(&creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if _, err := CreateMenu(db, &creation); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleMenuDelete(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := DeleteMenu(db, id); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(json.RawMessage(c.Param("id"))))
}

func HandleMenuUpdate(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := MenuUpdating{}
	if err := req.BindParams(&updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := UpdateMenu(db, &updating); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(req.ID))
}

func HandleMenuGet(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	menu, err := DetailMenu(db, id)
	if err != nil {
		panic(err)
	}
	if menu == nil {
		panic(gorm.ErrRecordNotFound)
	}
	c.JSON(http.StatusOK, misc.Success(json.RawMessage(c.Param("id")), gin.H{"menu": menu}))
}
