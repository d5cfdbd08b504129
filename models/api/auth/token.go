package authapimodels

type JWTResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // время жизни токена, сек
}
