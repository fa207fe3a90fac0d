package models

// PhoneAddressRequest is the body of POST and PUT /api/phones/.
// Address is a pointer so a missing field is distinguishable from "".
type PhoneAddressRequest struct {
	Phone   string  `json:"phone" validate:"phone"`
	Address *string `json:"address" validate:"required"`
}
