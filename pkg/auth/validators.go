package auth

// LoginPayload represents the request body for both login endpoints.
type LoginPayload struct {
	Username string `json:"username" mod:"trim" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the body of a successful token exchange.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse is the body of the legacy login endpoint.
type LoginResponse struct {
	Exists bool     `json:"exists"`
	Grupos []string `json:"grupos"`
	Token  *string  `json:"token"`
}

// MeResponse describes the authenticated user for the console.
type MeResponse struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Centre   *string  `json:"centre"`
	Grup     *string  `json:"grup"`
	Roles    []string `json:"roles"`
	IsStaff  bool     `json:"is_staff"`
}
