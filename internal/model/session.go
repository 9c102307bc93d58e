package model

// Session 当前请求的用户身份，由鉴权中间件从 JWT 中解析后显式传入各服务
type Session struct {
	UserID uint
	Role   UserRole
}

func (s Session) IsAdmin() bool {
	return s.Role == Admin
}

func (s Session) Valid() bool {
	return s.UserID != 0
}
