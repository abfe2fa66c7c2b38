package previewsdk

// RegisterRequest is the body of POST /user/register. All fields are
// required.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse confirms the creation of a new user.
type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// LoginResponse reports the login outcome. Token is present only on
// success; failure carries the same shape with Success=false and an empty
// User map.
type LoginResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token,omitempty"`
	User    map[string]string `json:"user"`
}

// UpdateProfileRequest is the body of PUT /user/profile/update. Email
// identifies the account; absent optional fields are left unchanged.
type UpdateProfileRequest struct {
	Email             string  `json:"email,omitempty"`
	Username          *string `json:"username,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// UpdateProfileResponse reports a profile update field by field.
// FailedUpdates is JSON null, not an empty list, when every field
// succeeded.
type UpdateProfileResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	UpdatedFields []string            `json:"updated_fields"`
	FailedUpdates []map[string]string `json:"failed_updates"`
}

// RetrieveContentRequest is the body of POST /content/retrieve.
type RetrieveContentRequest struct {
	URL string `json:"url"`
}

// RetrieveContentResponse carries either the fetched page or a classified
// error message, discriminated by Status ("success" or "failed").
type RetrieveContentResponse struct {
	Status  string `json:"status"`
	Content string `json:"content,omitempty"`
	Title   string `json:"title,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse is the shared failure envelope for 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
