package utils

import (
	"strconv"
	"strings"
)

// StringToUint64 parses a form id. It returns 0 when the value is not a number.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(strings.TrimSpace(str), 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// StringToFloat accepts a comma as decimal separator ("1,75").
func StringToFloat(str string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(str), ",", "."), 64)
}

func StringToInt(str string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(str))
}
