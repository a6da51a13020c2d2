package domain

type Role string

const (
	// Regular readers: manage their books, write reviews, manage tags
	RoleUser Role = "user"
	// Admins additionally see the full review feed
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// RoleAllowed reports whether role is in the allowed set a route declared.
func RoleAllowed(role string, allowed []Role) bool {
	for _, a := range allowed {
		if role == string(a) {
			return true
		}
	}
	return false
}
