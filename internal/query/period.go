package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
)

// Period parsing errors.
var (
	ErrInvalidYearMonth = fmt.Errorf("%w: invalid year-month", common.ErrValidation)
	ErrInvalidYear      = fmt.Errorf("%w: invalid year", common.ErrValidation)
)

var (
	yearMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
)

// YearMonth is a calendar month in a specific year.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month t falls in.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(text string) (YearMonth, error) {
	m := yearMonthPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return YearMonth{}, fmt.Errorf("%w: %q (expected YYYY-MM)", ErrInvalidYearMonth, text)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q (month out of range)", ErrInvalidYearMonth, text)
	}

	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// ParseYear parses a four digit year.
func ParseYear(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if !yearPattern.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: %q (expected YYYY)", ErrInvalidYear, text)
	}
	year, _ := strconv.Atoi(trimmed)
	return year, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
