package kafka

import "time"

type EventType string

const (
	AdCreated       EventType = "ad_created"
	AdUpdated       EventType = "ad_updated"
	AdDeleted       EventType = "ad_deleted"
	AdImageUploaded EventType = "ad_image_uploaded"
	AdViewed        EventType = "ad_viewed"
)

// Event - событие жизненного цикла объявления
type Event struct {
	Type       EventType `json:"type"`
	AdID       int64     `json:"ad_id"`
	UserID     int64     `json:"user_id,omitempty"`
	CategoryID int64     `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewEvent(t EventType, adID, userID, categoryID int64) Event {
	return Event{
		Type:       t,
		AdID:       adID,
		UserID:     userID,
		CategoryID: categoryID,
		Timestamp:  time.Now().UTC(),
	}
}
