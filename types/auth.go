package types

// Actor 当前操作者身份，由认证中间件解析后显式传入各业务方法
type Actor struct {
	ID   int64
	Role string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
