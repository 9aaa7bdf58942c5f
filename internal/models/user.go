package models

// User is a waitlist entry. Rows are created on join and never touched again.
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Email string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
}

// JoinRequest is the payload accepted by POST /join.
type JoinRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email"`
}
