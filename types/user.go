package types

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserRegisterRequest struct {
	Account       string `json:"account"`
	Password      string `json:"password"`
	CheckPassword string `json:"check_password"`
}

type UserLoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type LoginUserVO struct {
	ID        int64     `json:"id"`
	Account   string    `json:"account"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	Profile   string    `json:"profile"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type UserVO struct {
	ID       int64  `json:"id"`
	Account  string `json:"account"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

type UserQueryRequest struct {
	PageRequest

	ID       int64  `json:"id"`
	Account  string `json:"account"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`

	SortField string `json:"sort_field"`
	SortOrder string `json:"sort_order"`
}

type UserVOPage struct {
	Records  []*UserVO `json:"records"`
	Total    int64     `json:"total"`
	Current  int       `json:"current"`
	PageSize int       `json:"page_size"`
}
