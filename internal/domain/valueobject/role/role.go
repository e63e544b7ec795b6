package role

// Role is the closed set of account roles. Every account starts as User and
// is upgraded through KYC review; Admin and Commercial are assigned by staff.
type Role string

const (
	Admin      = Role("ADMIN")
	Commercial = Role("COMMERCIAL")
	Business   = Role("BUSINESS")
	Personal   = Role("PERSONAL")
	User       = Role("USER")
)

func (r Role) String() string {
	return string(r)
}

func IsValid[T Role | string](role T) bool {
	switch Role(role) {
	case Admin, Commercial, Business, Personal, User:
		return true
	default:
		return false
	}
}

// All returns every valid role, in privilege order.
func All() []Role {
	return []Role{Admin, Commercial, Business, Personal, User}
}
