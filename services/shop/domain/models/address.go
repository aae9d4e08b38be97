package models

import "fmt"

// Address is an immutable value object. Members carry their current address;
// deliveries snapshot it at order time so later member moves do not rewrite
// order history.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// NewAddress constructs an Address, rejecting blank components.
func NewAddress(city, street, zipcode string) (Address, error) {
	if city == "" || street == "" || zipcode == "" {
		return Address{}, fmt.Errorf("address requires city, street and zipcode")
	}
	return Address{City: city, Street: street, Zipcode: zipcode}, nil
}
