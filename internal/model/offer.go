package model

// Offer is an executor's bid on an order.
type Offer struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	OrderID    int64 `gorm:"index" json:"order_id"`
	ExecutorID int64 `gorm:"index" json:"executor_id"`
}

func (Offer) TableName() string { return "offer" }

// OfferView is the display form of an Offer: the referenced order's name and
// executor's first name replace the raw ids. A nil field means the
// referenced row no longer exists.
type OfferView struct {
	ID           int64   `json:"id"`
	OrderName    *string `json:"order_id"`
	ExecutorName *string `json:"executor_id"`
}
