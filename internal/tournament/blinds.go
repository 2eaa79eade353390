package tournament

import (
	"strconv"
	"strings"
)

// BlindLevel is one step of the fixed blind ladder. Amounts are BRL; the
// labels carry the comma-decimal rendering the tables expect.
type BlindLevel struct {
	Level      int     `json:"level"`
	Small      float64 `json:"small"`
	Big        float64 `json:"big"`
	SmallLabel string  `json:"smallLabel"`
	BigLabel   string  `json:"bigLabel"`
}

var blindLadder = [][2]float64{
	{0.25, 0.50},
	{0.25, 0.75},
	{0.50, 1.00},
	{0.50, 1.50},
	{1.00, 2.00},
	{1.00, 3.00},
	{2.00, 4.00},
	{2.00, 5.00},
	{3.00, 6.00},
	{3.00, 7.00},
	{4.00, 8.00},
	{4.00, 9.00},
	{5.00, 10.00},
}

// BlindLevels returns the ladder, 1-based.
func BlindLevels() []BlindLevel {
	levels := make([]BlindLevel, 0, len(blindLadder))
	for i, pair := range blindLadder {
		levels = append(levels, BlindLevel{
			Level:      i + 1,
			Small:      pair[0],
			Big:        pair[1],
			SmallLabel: FormatBRL(pair[0]),
			BigLabel:   FormatBRL(pair[1]),
		})
	}
	return levels
}

// FormatBRL renders an amount with a comma decimal separator.
func FormatBRL(amount float64) string {
	return strings.Replace(strconv.FormatFloat(amount, 'f', 2, 64), ".", ",", 1)
}

// ParseBRL reads a comma-decimal amount back into a float.
func ParseBRL(value string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
}
