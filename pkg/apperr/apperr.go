package apperr

import (
	"errors"
	"net/http"
)

// Error is a typed application failure with a stable code and the HTTP
// status the boundary layer should translate it to.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a typed application error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// From extracts a typed application error from an error chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Member errors
var (
	ErrUserNotFound      = New("USER_NOT_FOUND", http.StatusNotFound, "no member with that id")
	ErrEmailAlreadyInUse = New("EMAIL_ALREADY_IN_USE", http.StatusConflict, "email already in use")
	ErrLoginFailed       = New("LOGIN_FAILED", http.StatusUnauthorized, "invalid email or password")
	ErrTokenInvalid      = New("TOKEN_INVALID", http.StatusUnauthorized, "invalid or expired token")
	ErrLoginRequired     = New("LOGIN_REQUIRED", http.StatusUnauthorized, "login required")
)

// Food errors
var (
	ErrFoodNotFound = New("FOOD_NOT_FOUND", http.StatusBadRequest, "unknown food category")
)

// Group errors
var (
	ErrOutOfDateRange = New("OUT_OF_DATE_RANGE", http.StatusBadRequest,
		"group date must be between one hour and one month from now")
	ErrGroupNotFound            = New("GROUP_NOT_FOUND", http.StatusNotFound, "group not found")
	ErrGroupDeleted             = New("GROUP_DELETED", http.StatusGone, "group has been deleted")
	ErrNoModifyPermissionGroup  = New("NO_MODIFY_PERMISSION_GROUP", http.StatusForbidden, "no permission to modify this group")
	ErrNoDeletePermissionGroup  = New("NO_DELETE_PERMISSION_GROUP", http.StatusForbidden, "no permission to delete this group")
)

// Chat errors
var (
	ErrChatroomNotFound = New("CHATROOM_NOT_FOUND", http.StatusNotFound, "no chat room for that group")
)

// Enrollment errors
var (
	ErrEnrollmentHistoryExists = New("ENROLLMENT_HISTORY_EXISTS", http.StatusConflict, "enrollment for this group already exists")
	ErrGroupFull               = New("GROUP_FULL", http.StatusConflict, "group is already full")
	ErrEnrollmentNotFound      = New("ENROLLMENT_NOT_FOUND", http.StatusNotFound, "enrollment not found")
	ErrNoDecisionPermission    = New("NO_DECISION_PERMISSION", http.StatusForbidden, "only the group owner can decide enrollments")
	ErrAlreadyDecided          = New("ALREADY_DECIDED", http.StatusConflict, "enrollment has already been decided")
)

// Comment and reply errors
var (
	ErrCommentNotFound           = New("COMMENT_NOT_FOUND", http.StatusNotFound, "comment not found")
	ErrReplyNotFound             = New("REPLY_NOT_FOUND", http.StatusNotFound, "reply not found")
	ErrNoModifyPermissionComment = New("NO_MODIFY_PERMISSION_COMMENT", http.StatusForbidden, "no permission to modify this comment")
	ErrNoDeletePermissionComment = New("NO_DELETE_PERMISSION_COMMENT", http.StatusForbidden, "no permission to delete this comment")
	ErrNoModifyPermissionReply   = New("NO_MODIFY_PERMISSION_REPLY", http.StatusForbidden, "no permission to modify this reply")
	ErrNoDeletePermissionReply   = New("NO_DELETE_PERMISSION_REPLY", http.StatusForbidden, "no permission to delete this reply")
	ErrInvalidAddress            = New("INVALID_ADDRESS", http.StatusBadRequest, "resource does not belong to the requested path")
)
