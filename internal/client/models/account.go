package models

// Account is the combined profile response.
type Account struct {
	Profile   Profile   `json:"profile"`
	Documents Documents `json:"documents"`
}

// SignupRequest carries the registration form. File fields are local paths.
type SignupRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	CVPath          string
	// DARSPaths holds up to four reports; the first is required.
	DARSPaths []string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Username     string `json:"username"`
	Token        string `json:"token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}

// Access returns the access credential under either field name.
func (r AuthResult) Access() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// TokenPair is the refresh endpoint response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordChange is the password update form.
type PasswordChange struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
	Confirm string `json:"-"`
}
