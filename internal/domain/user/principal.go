package user

// Principal is the authenticated caller identity attached to a request.
type Principal struct {
	UserID  string
	Email   string
	IsAdmin bool
}
