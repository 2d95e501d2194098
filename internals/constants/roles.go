package constants

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var AllowedRoles = []string{RoleUser, RoleAdmin}
