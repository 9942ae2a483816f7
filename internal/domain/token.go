package domain

// TokenPair is returned to clients after login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the outcome of a successful login or refresh.
type Session struct {
	User *User `json:"user"`
	TokenPair
}
