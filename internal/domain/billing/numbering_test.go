package billing_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gemsaccurate/billing-api/internal/domain/billing"
)

func TestNumberPrefix_GSTINSelectsTaxInvoice(t *testing.T) {
	assert.Equal(t, "INV", billing.NumberPrefix(true))
	assert.Equal(t, "CSH", billing.NumberPrefix(false))
}

func TestFormatNumber_Layout(t *testing.T) {
	issued := time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-240100001", billing.FormatNumber("INV", issued, 1))
	assert.Equal(t, "CSH-241200042", billing.FormatNumber("CSH",
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 42))
}

// Within a prefix, numbers sort lexically by issue period then sequence.
func TestFormatNumber_LexicalOrderFollowsPeriod(t *testing.T) {
	numbers := []string{
		billing.FormatNumber("INV", time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 1),
		billing.FormatNumber("INV", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), 120),
		billing.FormatNumber("INV", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), 7),
	}
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)

	assert.Equal(t, []string{numbers[2], numbers[1], numbers[0]}, sorted)
}
