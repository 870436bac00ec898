// internal/models/restaurant.go
package models

// OpeningHours describes the weekly schedule in display form.
type OpeningHours struct {
	Weekday string `json:"weekday" mapstructure:"weekday"`
	Weekend string `json:"weekend" mapstructure:"weekend"`
	Closed  string `json:"closed" mapstructure:"closed"`
}

// RestaurantInfo is the static restaurant profile served by info queries.
type RestaurantInfo struct {
	Name            string       `json:"name" mapstructure:"name"`
	Address         string       `json:"address" mapstructure:"address"`
	Phone           string       `json:"phone" mapstructure:"phone"`
	Email           string       `json:"email" mapstructure:"email"`
	OpeningHours    OpeningHours `json:"opening_hours" mapstructure:"opening_hours"`
	CuisineTypes    []string     `json:"cuisine_types" mapstructure:"cuisine_types"`
	SeatingCapacity int          `json:"seating_capacity" mapstructure:"seating_capacity"`
	Facilities      []string     `json:"facilities" mapstructure:"facilities"`
}
