package models

// Tracker holds the streak state for one (email, challenge) pair. There is at
// most one row per pair; current_day only ever grows.
type Tracker struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Email           string `json:"email" gorm:"type:varchar(255);uniqueIndex:idx_tracker_pair"`
	ChallengeName   string `json:"challenge_name" gorm:"column:challenge_name;type:varchar(255);uniqueIndex:idx_tracker_pair"`
	CurrentDay      int    `json:"current_day" gorm:"column:current_day;default:0"`
	LastCheckinDate string `json:"last_checkin_date" gorm:"column:last_checkin_date;type:varchar(10)"`
}

// TableName keeps the table name singular, matching the persisted layout.
func (Tracker) TableName() string { return "tracker" }

// ChallengeRequest is the payload accepted by the /challenge endpoints.
type ChallengeRequest struct {
	Email         string `json:"email" validate:"required,email"`
	ChallengeName string `json:"challenge_name" validate:"required,min=1,max=255"`
}
