package models

import "time"

// NotificationTarget identifies the kind of object a notification points
// at. The set is closed: templates and clients switch on it, so unknown
// kinds are rejected at creation time.
type NotificationTarget string

const (
	// TargetPost references a Post by ID.
	TargetPost NotificationTarget = "post"
	// TargetUser references a User by ID.
	TargetUser NotificationTarget = "user"
	// TargetComment references a Comment by ID.
	TargetComment NotificationTarget = "comment"
)

// Valid reports whether the target kind is one of the known kinds.
func (t NotificationTarget) Valid() bool {
	switch t {
	case TargetPost, TargetUser, TargetComment:
		return true
	}
	return false
}

// Notification records that an actor performed a verb on a target which
// concerns the recipient ("alice followed you", "bob commented on your
// post"). A user never receives notifications about their own actions;
// that rule is enforced where notifications are created.
type Notification struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	RecipientID uint               `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint               `gorm:"not null" json:"actor_id"`
	Verb        string             `gorm:"not null" json:"verb"`
	TargetType  NotificationTarget `gorm:"type:varchar(20);not null" json:"target_type"`
	TargetID    uint               `gorm:"not null" json:"target_id"`
	IsRead      bool               `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time          `json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Actor     User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"actor,omitempty"`
}
