package authority

import (
	"github.com/fundwit/go-commons/types"
)

type Role struct {
	ID        types.ID `json:"id"`
	Name      string   `json:"name"`
	DataScope int      `json:"data_scope"`
	Status    int      `json:"status"`
}

// Menu is the unit of authorization: a request is permitted when its path
// starts with the path of a menu reachable through one of the bearer's roles.
type Menu struct {
	ID      types.ID `json:"id"`
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	IsFrame bool     `json:"is_frame"`
}

type UserRole struct {
	UserID types.ID `json:"user_id" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
	RoleID types.ID `json:"role_id" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
}

type RoleMenu struct {
	RoleID types.ID `json:"role_id" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
	MenuID types.ID `json:"menu_id" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
}

type RoleCreation struct {
	Name      string `json:"name" binding:"required,lte=64"`
	DataScope int    `json:"data_scope"`
	Status    int    `json:"status"`
}

type RoleUpdating struct {
	ID        types.ID `json:"id" binding:"required"`
	Name      *string  `json:"name"`
	DataScope *int     `json:"data_scope"`
	Status    *int     `json:"status"`
}

type MenuCreation struct {
	Name    string `json:"name" binding:"required,lte=64"`
	Path    string `json:"path" binding:"required,lte=128"`
	IsFrame bool   `json:"is_frame"`
}

type MenuUpdating struct {
	ID      types.ID `json:"id" binding:"required"`
	Name    *string  `json:"name"`
	Path    *string  `json:"path"`
	IsFrame *bool    `json:"is_frame"`
}

type UserRolesReplacing struct {
	UserID  types.ID   `json:"user_id" binding:"required"`
	RoleIDs []types.ID `json:"role_ids"`
}

type RoleMenusReplacing struct {
	RoleID  types.ID   `json:"role_id" binding:"required"`
	MenuIDs []types.ID `json:"menu_ids"`
}
