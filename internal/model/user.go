package model

// User roles.
const (
	RoleStudent = "student"
	RoleParent  = "parent"
)

// User is a household member. Table users. Rows are provisioned by the
// identity provider; this service only reads them.
type User struct {
	UserID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email       string `gorm:"type:varchar(255);not null"                     json:"email"`
	Role        string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"` // student | parent
	HouseholdID string `gorm:"type:uuid;not null;index"                       json:"household_id"`
	BaseModel
}

func (User) TableName() string { return "users" }
