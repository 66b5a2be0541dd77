package recordid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	day := time.Date(2025, 3, 4, 10, 32, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing int
		want     string
	}{
		{name: "first record of the day", existing: 0, want: "SR-20250304-0001"},
		{name: "mid-day sequence", existing: 41, want: "SR-20250304-0042"},
		{name: "padding boundary", existing: 9998, want: "SR-20250304-9999"},
		{name: "sequence grows past four digits", existing: 9999, want: "SR-20250304-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(day, tt.existing))
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	day := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, Generate(day, 7), Generate(day, 7))
}

func TestGenerateUsesSingleDigitPaddedDate(t *testing.T) {
	day := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "SR-20250109-0001", Generate(day, 0))
}

func TestDayPrefix(t *testing.T) {
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "SR-20250304", DayPrefix(day))
	assert.True(t, len(Generate(day, 0)) > len(DayPrefix(day)))
}
