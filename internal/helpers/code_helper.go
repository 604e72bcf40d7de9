package helpers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingCode builds the customer-facing booking reference,
// e.g. BK20250817A3F1.
func GenerateBookingCode(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("BK%s%s", t.Format("20060102"), suffix)
}

// GenerateScheduleCode builds a schedule code, e.g. SCH20250817042.
// The suffix has only 1000 values per day, so collisions are possible;
// uniqueness is enforced by the database index, not here.
func GenerateScheduleCode(t time.Time) string {
	return fmt.Sprintf("SCH%s%03d", t.Format("20060102"), rand.Intn(1000))
}
