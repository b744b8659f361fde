package dto

// BroadcastRequest fans a notification out to club members. Admin and coach
// only.
type BroadcastRequest struct {
	Type        string  `json:"type" binding:"required,oneof=event announcement reminder system"`
	Title       string  `json:"title" binding:"required,min=1"`
	Message     string  `json:"message" binding:"required,min=1"`
	RelatedID   *string `json:"related_id"`
	TargetGroup *string `json:"target_group"`
}

// NotificationListMeta carries the unread counter next to the list payload.
type NotificationListMeta struct {
	UnreadCount int `json:"unread_count"`
}

// BroadcastResult reports how many notifications were created.
type BroadcastResult struct {
	Count int `json:"count"`
}
