package feed

import "classfeed/models"

// IsModerator reports whether the session holds an elevated role.
func IsModerator(session models.Session) bool {
	return session.Role == models.RoleInstructor || session.Role == models.RoleTA
}

// CanModify is the single gate for Edit and Delete: the author of a post or
// a moderator may change it. Both actions share this predicate so they cannot
// drift apart.
func CanModify(session models.Session, post models.Post) bool {
	if session.UID == "" {
		return false
	}
	return session.UID == post.AuthorID.Hex() || IsModerator(session)
}
