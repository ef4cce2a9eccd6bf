package service

import (
	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/validation"
)

// UserInput is the body of POST /users and PUT /users/{id}.
type UserInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Age       *int   `json:"age" validate:"omitempty,gte=0"`
	Email     string `json:"email" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=100"`
}

func (in *UserInput) Validate() error {
	return validation.Struct(in)
}

// apply overwrites every field of u, so omitted optionals become nil.
func (in *UserInput) apply(u *model.User) error {
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Age = in.Age
	u.Email = in.Email
	u.Role = in.Role
	u.Phone = in.Phone
	return nil
}

// OrderInput is the body of POST /orders and PUT /orders/{id}.
type OrderInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=100"`
	StartDate   string `json:"start_date" validate:"required,date"`
	EndDate     string `json:"end_date" validate:"required,date"`
	Address     string `json:"address" validate:"required,max=200"`
	Price       *int   `json:"price" validate:"required"`
	CustomerID  *int64 `json:"customer_id"`
	ExecutorID  *int64 `json:"executor_id"`
}

func (in *OrderInput) Validate() error {
	return validation.Struct(in)
}

func (in *OrderInput) apply(o *model.Order) error {
	start, err := parseDateField("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDateField("end_date", in.EndDate)
	if err != nil {
		return err
	}

	o.Name = in.Name
	o.Description = in.Description
	o.StartDate = start
	o.EndDate = end
	o.Address = in.Address
	o.Price = 0
	if in.Price != nil {
		o.Price = *in.Price
	}
	o.CustomerID = in.CustomerID
	o.ExecutorID = in.ExecutorID
	return nil
}

// OfferInput is the body of POST /offers and PUT /offers/{id}.
type OfferInput struct {
	OrderID    *int64 `json:"order_id" validate:"required"`
	ExecutorID *int64 `json:"executor_id" validate:"required"`
}

func (in *OfferInput) Validate() error {
	return validation.Struct(in)
}

// apply expects in to have passed Validate, so both ids are set.
func (in *OfferInput) apply(o *model.Offer) error {
	o.OrderID = *in.OrderID
	o.ExecutorID = *in.ExecutorID
	return nil
}

func parseDateField(field, value string) (model.Date, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, errs.NewValidationError([]errs.FieldError{{
			Field: field,
			Error: "must be in MM/DD/YYYY format",
		}})
	}
	return d, nil
}
