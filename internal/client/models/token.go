package models

// TokenPair is the credential issued at login: a short-lived access token
// that authorizes requests and a long-lived refresh token exchanged for a new
// access token when the former is rejected.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
