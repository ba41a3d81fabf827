package session

import (
	"github.com/fundwit/go-commons/types"
)

// Session binds an opaque bearer token to the owning user. A user may hold
// any number of live sessions; a session disappears only when it is deleted.
type Session struct {
	Token  string   `json:"token" gorm:"primary_key"`
	UserID types.ID `json:"userId" sql:"type:BIGINT UNSIGNED NOT NULL"`
}

const KeySecCtx = "SecCtx"
