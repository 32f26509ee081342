package permissions

import (
	"adboard/internal/session"
	"adboard/internal/user"
	myErr "adboard/internal/types/errors"
)

// IsCreatedByOrAdminOrModerator - объявление может менять его автор,
// а также любой админ или модератор
func IsCreatedByOrAdminOrModerator(sess *session.Session, authorID int64) bool {
	if sess == nil {
		return false
	}

	switch sess.Role {
	case user.RoleAdmin, user.RoleModerator:
		return true
	}

	return sess.UserID == authorID
}

// CheckAdOwner возвращает ErrNoAuth без сессии и ErrForbidden без прав
func CheckAdOwner(sess *session.Session, authorID int64) error {
	if sess == nil {
		return myErr.ErrNoAuth
	}
	if !IsCreatedByOrAdminOrModerator(sess, authorID) {
		return myErr.ErrForbidden
	}
	return nil
}
