package student

import "strconv"

// TotalSchoolDays is the attendance window: school days in 3 months.
const TotalSchoolDays = 90

// Tally maps a registration number to its number of records in the loaded set.
type Tally map[string]int

// CountAttendance counts the occurrences of each registration number.
func CountAttendance(rollNumbers []string) Tally {
	tally := make(Tally, len(rollNumbers))
	for _, rn := range rollNumbers {
		tally[rn]++
	}
	return tally
}

func RollNumbers(records []Record) []string {
	rns := make([]string, 0, len(records))
	for _, r := range records {
		rns = append(rns, r.Data.RollNumber)
	}
	return rns
}

// Percentage is the attendance percentage of count over TotalSchoolDays, with 2 decimals.
func Percentage(count int) string {
	return PercentageOf(count, TotalSchoolDays)
}

// PercentageOf is the attendance percentage of count over total days, with 2 decimals.
// count is not capped: it may exceed total.
func PercentageOf(count, total int) string {
	if total <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(count)/float64(total)*100, 'f', 2, 64)
}

// Sum returns the total number of counted records.
func (t Tally) Sum() int {
	var n int
	for _, c := range t {
		n += c
	}
	return n
}
