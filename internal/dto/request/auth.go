package request

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// TokenRequest exchanges a confirmation code for an access token. Field
// presence is checked by the handler because a missing field must yield
// a bare 400 with no error payload.
type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}
