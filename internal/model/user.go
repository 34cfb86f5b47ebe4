package model

// 身份服务在外部，这里只消费 JWT 里带过来的用户ID和角色，不落用户表
type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)
