package identity

// LoginInput contains the input for user login
type LoginInput struct {
	Username   string
	Password   string
	RememberMe bool
	IP         string // Client IP, only logged
}
