package model

type User struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Age       *int   `json:"age"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Role      string `gorm:"size:100;not null" json:"role"`
	Phone     string `gorm:"size:100;not null" json:"phone"`
}

func (User) TableName() string { return "user" }
