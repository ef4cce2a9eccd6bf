package model

type Order struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:100;not null" json:"description"`
	StartDate   Date   `gorm:"type:date" json:"start_date"`
	EndDate     Date   `gorm:"type:date" json:"end_date"`
	Address     string `gorm:"size:200;not null" json:"address"`
	Price       int    `gorm:"not null" json:"price"`
	// CustomerID and ExecutorID reference user rows; no constraint is declared.
	CustomerID *int64 `json:"customer_id"`
	ExecutorID *int64 `json:"executor_id"`
}

func (Order) TableName() string { return "order" }
