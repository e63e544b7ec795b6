package fixtures

const (
	AccessTokenSecretKey  = "test-access-token-secret-key"
	RefreshTokenSecretKey = "test-refresh-token-secret-key"
)

var TestUser = struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Currency string
}{
	Name:     "John Doe",
	Email:    "john.doe@example.com",
	Phone:    "+237650123456",
	Password: "SecurePass123!",
	Currency: "XAF",
}

var TestAdmin = struct {
	Name     string
	Email    string
	Password string
}{
	Name:     "Ada Admin",
	Email:    "admin@redacok.example",
	Password: "AdminPass123!",
}
