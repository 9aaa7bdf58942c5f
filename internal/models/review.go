package models

// Review is a community product review. The JSON field names are fixed by the
// frontend contract, hence the camelCase tags.
type Review struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(255)"`
	SkinType  string `json:"skinType" gorm:"column:skinType;type:varchar(100)"`
	Title     string `json:"title" gorm:"type:varchar(255)"`
	FullStory string `json:"fullStory" gorm:"column:fullStory"`
	Location  string `json:"location" gorm:"type:varchar(255);default:'Community Member'"`
	Concerns  string `json:"concerns" gorm:"type:varchar(255);default:'User Verification Pending'"`
	Rating    int    `json:"rating" gorm:"default:5"`
	Time      string `json:"time" gorm:"type:varchar(100);default:'Just now'"`
}

// ReviewRequest is the payload accepted by POST /submit-review. The review
// body is stored as fullStory.
type ReviewRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	SkinType string `json:"skinType" validate:"required,max=100"`
	Title    string `json:"title" validate:"required,max=255"`
	Review   string `json:"review" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Concerns string `json:"concerns" validate:"omitempty,max=255"`
}
