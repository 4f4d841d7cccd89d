package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

// LocationInput is a trip waypoint as supplied by the caller. Coordinates
// carry range tags only; zero is a legitimate latitude or longitude, and a
// wholly absent waypoint is caught by the required tag on the parent field.
type LocationInput struct {
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
	Name string  `json:"name"`
}

// Location converts the input into a domain location, synthesizing the
// display name when the caller left it blank.
func (l LocationInput) Location() shared.Location {
	return shared.NewLocation(l.Lat, l.Lon, l.Name)
}

// TripInput defines a trip: where the truck is, where to pick up, where to
// drop off, and how many on-duty hours the driver has already burned this
// cycle.
type TripInput struct {
	ID                     string        `json:"id"`
	Current                LocationInput `json:"current" validate:"required"`
	Pickup                 LocationInput `json:"pickup" validate:"required"`
	Dropoff                LocationInput `json:"dropoff" validate:"required"`
	AccumulatedWeeklyHours float64       `json:"accumulated_weekly_hours" validate:"gte=0,lt=70"`
}

// SimulateTripCommand requests an ELD schedule for a trip. BaseDate anchors
// the virtual clock at that day's midnight; when zero, the handler derives
// it from its clock.
type SimulateTripCommand struct {
	Input    TripInput
	BaseDate time.Time
}

var validate = validator.New()

// ValidateTripInput rejects a trip before simulation begins. Violations are
// returned as a single InvalidTripInputError naming every failed field.
func ValidateTripInput(input TripInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
				e.Field(), e.Tag(), e.Value()))
		}
		return shared.NewInvalidTripInputError(strings.Join(messages, "; "))
	}
	return shared.NewInvalidTripInputError(err.Error())
}
