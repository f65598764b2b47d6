package constants

// ContextKeyUserID is the gin context key carrying the authenticated user ID.
const ContextKeyUserID = "user_id"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8
