package response

// SignupResponse echoes the submitted identity fields; the confirmation
// code itself only ever travels by mail.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
