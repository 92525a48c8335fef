package models

import (
	"strings"

	"busreservation/internal/domain"
)

// Passenger is owned by exactly one booking.
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
}

// Validate checks the fields adapters collect from users. Text fields may not
// carry commas because records are stored unescaped.
func (p Passenger) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if p.Age <= 0 {
		return domain.ValidationError{Field: "age", Msg: "must be a positive number"}
	}
	if strings.TrimSpace(p.Phone) == "" {
		return domain.ValidationError{Field: "phone", Msg: "is required"}
	}
	for field, v := range map[string]string{
		"name":   p.Name,
		"gender": p.Gender,
		"phone":  p.Phone,
		"email":  p.Email,
	} {
		if strings.ContainsAny(v, ",\n\r") {
			return domain.ValidationError{Field: field, Msg: "must not contain commas or line breaks"}
		}
	}
	return nil
}
