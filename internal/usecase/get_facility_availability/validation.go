package get_facility_availability

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.FacilityID == uuid.Nil {
		return fmt.Errorf("%w: facility id is required", ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
