package constants

import "time"

const (
	// SessionCookieName is the name of the cookie carrying the session.
	SessionCookieName = "project_tracker_session"

	// ContextKeyUserID is used both as the session key and the gin context key
	// for the authenticated user's ID.
	ContextKeyUserID = "user_id"

	// ContextKeyUser holds the user loaded by RequireAuth.
	ContextKeyUser = "user"

	// ContextKeyProject and ContextKeyPerson hold rows loaded by the ownership
	// middleware.
	ContextKeyProject = "project"
	ContextKeyPerson  = "person"

	SessionMaxAge = 86400 * 7
)

const (
	DefaultPageSize = 50
	MinPageSize     = 1
	MaxPageSize     = 200
)

// ExpiringSoonWindow is how close to its deadline an active project must be
// before it is shown as expiring soon.
const ExpiringSoonWindow = 24 * time.Hour

// ProfilePictureExt is appended to the person ID to form the storage key.
const ProfilePictureExt = ".jpg"

// DefaultMaxUploadBytes bounds the size of an uploaded profile picture.
const DefaultMaxUploadBytes = 5 << 20
