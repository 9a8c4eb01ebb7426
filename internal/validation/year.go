package validation

import (
	"fmt"
	"time"
)

// nowFunc reads the wall clock. It is a variable so tests can pin the
// current year.
var nowFunc = time.Now

// ValidatePublicationYear rejects years after the current calendar year.
// The current year is read from the system clock at validation time.
func ValidatePublicationYear(year int) error {
	currentYear := nowFunc().Year()
	if year > currentYear {
		return fmt.Errorf("publication year cannot be in the future; must be less than or equal to %d", currentYear)
	}
	if year <= 0 {
		return fmt.Errorf("publication year must be a positive year")
	}
	return nil
}
