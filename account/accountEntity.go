package account

import "github.com/fundwit/go-commons/types"

type User struct {
	ID     types.ID `json:"id"`
	Name   string   `json:"name" gorm:"unique_index"`
	Secret string   `json:"secret"`
}

type UserInfo struct {
	ID       types.ID `json:"id"`
	Username string   `json:"username"`
}

type UserCreation struct {
	Username string `json:"username" binding:"required,lte=32"`
	Password string `json:"password" binding:"required,gte=6,lte=32"`
}

type UserUpdating struct {
	ID       types.ID `json:"id" binding:"required"`
	Username *string  `json:"username"`
	Password *string  `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,lte=32"`
	Password string `json:"password" binding:"required,gte=6,lte=32"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Name}
}
