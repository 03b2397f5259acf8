package product

import (
	"fmt"
	"regexp"
	"strconv"
)

const idPrefix = "P"

var productIDPattern = regexp.MustCompile(`^P(\d+)$`)

// FormatProductID renders a sequence number as a product ID. Numbers are zero
// padded to three digits; larger numbers keep their natural width.
func FormatProductID(n int) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

// ParseProductNumber extracts the numeric suffix of an allocator-shaped
// product ID. IDs outside the `P<digits>` shape report ok=false and do not
// participate in allocation.
func ParseProductNumber(id string) (int, bool) {
	match := productIDPattern.FindStringSubmatch(id)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// chooseProductID picks the next ID after the given high-water number. The
// candidate is re-checked against the store; a hit means another writer got
// there first, so the next number up is used instead.
func chooseProductID(maxNumber int, exists func(string) (bool, error)) (string, error) {
	candidate := FormatProductID(maxNumber + 1)
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if taken {
		return FormatProductID(maxNumber + 2), nil
	}
	return candidate, nil
}

// maxProductNumber returns the highest numeric suffix among the given IDs,
// or 0 when none match the allocator shape.
func maxProductNumber(ids []string) int {
	max := 0
	for _, id := range ids {
		if n, ok := ParseProductNumber(id); ok && n > max {
			max = n
		}
	}
	return max
}
