package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinClock fixes the validation clock to the given year for the duration
// of the test.
func pinClock(t *testing.T, year int) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { nowFunc = orig })
}

func TestValidatePublicationYear_PastAndPresent(t *testing.T) {
	pinClock(t, 2024)

	assert.NoError(t, ValidatePublicationYear(2024))
	assert.NoError(t, ValidatePublicationYear(1999))
	assert.NoError(t, ValidatePublicationYear(1))
}

func TestValidatePublicationYear_Future(t *testing.T) {
	pinClock(t, 2024)

	err := ValidatePublicationYear(2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024")
}

func TestValidatePublicationYear_BoundaryTracksClock(t *testing.T) {
	// The same year flips from invalid to valid when the clock advances.
	pinClock(t, 2024)
	require.Error(t, ValidatePublicationYear(2025))

	pinClock(t, 2025)
	require.NoError(t, ValidatePublicationYear(2025))
}

func TestValidatePublicationYear_NonPositive(t *testing.T) {
	pinClock(t, 2024)

	assert.Error(t, ValidatePublicationYear(0))
	assert.Error(t, ValidatePublicationYear(-300))
}
