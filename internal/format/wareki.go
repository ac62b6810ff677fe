package format

import (
	"fmt"
	"strconv"
	"strings"
)

// era boundaries, checked newest first
var eras = []struct {
	name  string
	start int
}{
	{name: "令和", start: 2019},
	{name: "平成", start: 1989},
}

// ToWareki converts a YYYY-MM-DD date into a Japanese era date such as
// 令和1年5月1日. Years before 1989 are printed in the Gregorian calendar.
// The first year of an era is written as 1, never 元.
func ToWareki(date string) (string, error) {
	if date == "" {
		return "", nil
	}

	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", date, err)
		}
		nums[i] = n
	}
	y, m, d := nums[0], nums[1], nums[2]

	for _, era := range eras {
		if y >= era.start {
			return fmt.Sprintf("%s%d年%d月%d日", era.name, y-era.start+1, m, d), nil
		}
	}
	return fmt.Sprintf("%d年%d月%d日", y, m, d), nil
}
