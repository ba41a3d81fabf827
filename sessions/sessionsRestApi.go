package sessions

import (
	"errors"
	"net/http"

	"github.com/shaorongqiang/permission-api/account"
	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/misc"
	"github.com/shaorongqiang/permission-api/persistence"
	"github.com/shaorongqiang/permission-api/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterAuthHandler(r *gin.Engine) {
	g := r.Group("/auth")
	g.POST("/login", HandleLogin)
	g.POST("/register", HandleRegister)
}

func RegisterOnlineHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/online", middleWares...)
	g.POST("/list", HandleOnlineList)
	g.GET("/delete/:token", HandleOnlineDelete)
}

// HandleLogin verifies credentials and mints a session. An unknown username
// and a wrong password come back as 200 with distinct envelope codes, the way
// callers of this API expect to tell them apart.
func HandleLogin(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	login := account.LoginRequest{}
	if err := req.BindParams(&login); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	s, err := account.Authenticate(db, login.Username, login.Password)
	if errors.Is(err, bizerror.ErrUsernameNotFound) {
		c.JSON(http.StatusOK, misc.UsernameNotFound(req.ID))
		return
	}
	if errors.Is(err, bizerror.ErrWrongPassword) {
		c.JSON(http.StatusOK, misc.WrongPassword(req.ID))
		return
	}
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, account.TokenResponse{Token: s.Token}))
}

func HandleRegister(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	register := account.RegisterRequest{}
	if err := req.BindParams(&register); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	s, err := account.Register(db, register.Username, register.Password)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, account.TokenResponse{Token: s.Token}))
}

func HandleOnlineList(c *gin.Context) {
	req := misc.ApiRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	page := misc.PageRequest{}
	if err := req.BindParams(&page); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	records, err := session.List(db, page.Page, page.PageSize)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.Success(req.ID, gin.H{"sessions": records}))
}

// HandleOnlineDelete revokes a session. Revocation takes effect on the very
// next request carrying the token; deleting an absent token succeeds too.
func HandleOnlineDelete(c *gin.Context) {
	token := c.Param("token")

	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	if err := session.Delete(db, token); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, misc.SuccessWithoutData(nil))
}
