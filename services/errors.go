package services

// NotFoundError signals that a referenced entity does not exist
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError signals a valid request rejected by a business rule
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ForbiddenError signals an ownership or role violation
type ForbiddenError struct {
	Code    string
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ValidationError signals malformed input that slipped past the boundary
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	// Conversation engine
	ErrSameUser              = &ConflictError{Code: "SAME_USER", Message: "Sender and recipient cannot be the same user"}
	ErrRecipientNotFound     = &NotFoundError{Code: "RECIPIENT_NOT_FOUND", Message: "Recipient not found"}
	ErrAdvertisementNotFound = &NotFoundError{Code: "ADVERTISEMENT_NOT_FOUND", Message: "Advertisement not found"}
	ErrRecipientNotOwner     = &ConflictError{Code: "RECIPIENT_NOT_OWNER", Message: "Recipient is not the advertisement owner"}
	ErrOwnerMessageFirst     = &ConflictError{Code: "OWNER_MESSAGE_FIRST", Message: "Advertisement owner cannot send the first message"}
	ErrConversationNotFound  = &NotFoundError{Code: "CONVERSATION_NOT_FOUND", Message: "No conversation exists between these users"}
	ErrCursorPair            = &ValidationError{Code: "INVALID_CURSOR", Message: "cursor_date_time and cursor_message_id must both be present or both be absent"}
	ErrBlankMessage          = &ValidationError{Code: "BLANK_MESSAGE", Message: "Message text cannot be blank"}

	// Advertisement lifecycle
	ErrNotOwner                = &ForbiddenError{Code: "NOT_OWNER", Message: "Only the advertisement owner or an administrator may do this"}
	ErrAdvertisementClosed     = &ConflictError{Code: "ADVERTISEMENT_CLOSED", Message: "Advertisement is closed"}
	ErrAlreadyPromoted         = &ConflictError{Code: "ALREADY_PROMOTED", Message: "Advertisement is already promoted"}
	ErrAdvertisementNotClosed  = &ConflictError{Code: "ADVERTISEMENT_NOT_CLOSED", Message: "Advertisement is not closed"}
	ErrPromoteClosed           = &ConflictError{Code: "ADVERTISEMENT_CLOSED", Message: "Cannot promote a closed advertisement"}

	// Comment tree
	ErrCommentNotFound       = &NotFoundError{Code: "COMMENT_NOT_FOUND", Message: "Comment not found"}
	ErrParentCommentNotFound = &NotFoundError{Code: "PARENT_COMMENT_NOT_FOUND", Message: "Parent comment not found"}
	ErrParentCommentDeleted  = &ConflictError{Code: "PARENT_COMMENT_DELETED", Message: "Cannot reply to a deleted comment"}
	ErrParentAdMismatch      = &ConflictError{Code: "PARENT_AD_MISMATCH", Message: "Parent comment belongs to a different advertisement"}
	ErrNotCommenter          = &ForbiddenError{Code: "NOT_COMMENTER", Message: "Only the commenter or an administrator may delete a comment"}

	// Users, ratings, sales
	ErrUserNotFound         = &NotFoundError{Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrSelfRating           = &ConflictError{Code: "SELF_RATING", Message: "Users cannot rate themselves"}
	ErrRatingNotFound       = &NotFoundError{Code: "RATING_NOT_FOUND", Message: "Rating not found"}
	ErrBuyerNotFound        = &NotFoundError{Code: "BUYER_NOT_FOUND", Message: "Buyer not found"}
	ErrSelfSale             = &ConflictError{Code: "SELF_SALE", Message: "Owner cannot record a sale to themselves"}
	ErrInsufficientQuantity = &ConflictError{Code: "INSUFFICIENT_QUANTITY", Message: "Sale quantity exceeds remaining stock"}
)
