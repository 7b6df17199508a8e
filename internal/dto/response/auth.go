package response

// SignupResponse echoes the accepted identity. The confirmation code is
// never returned over the API, only by email.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
