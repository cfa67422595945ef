package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "Email already registered!"
	errInvalidCredentials = "Invalid email or password!"
	errProductNotFound    = "Product not found"
	errNotAuthenticated   = "Not authenticated"
	errContactFailed      = "Failed to send message. Please try again later."
)
