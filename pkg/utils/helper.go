package utils

import (
	"fmt"
	"strconv"
	"strings"
)

/**************************************************************************************************
** TimeToSeconds converts a clock string "HH:MM:SS" into seconds since midnight. Values past
** 24:00:00 are accepted on purpose: duration strings reuse the same spelling and may exceed
** a day. Anything but exactly three colon-separated integers is rejected, trailing text
** included.
**
** @param clock - Clock string to parse
** @return int - Seconds represented by the string
** @return error - Parse error when the string is not HH:MM:SS
**************************************************************************************************/
func TimeToSeconds(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, got %q", clock)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	s, errS := strconv.Atoi(parts[2])
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("expected HH:MM:SS, got %q", clock)
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("clock value out of range: %q", clock)
	}
	return h*3600 + m*60 + s, nil
}

/**************************************************************************************************
** SecondsToClock renders a second count as "HH:MM:SS". The hour field grows past 23 for
** values longer than a day; this is the inverse of TimeToSeconds, not a wall clock.
**
** @param seconds - Second count to render
** @return string - Clock string
**************************************************************************************************/
func SecondsToClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

/**************************************************************************************************
** RemoveEmptyStrings removes all empty strings from a string array and returns a new array
** without the empty strings. Preserves the order of non-empty strings.
**
** @param arr - Array to process
** @return []string - New array containing only non-empty strings
**************************************************************************************************/
func RemoveEmptyStrings(arr []string) []string {
	result := make([]string, 0, len(arr))

	for _, str := range arr {
		if str != "" {
			result = append(result, str)
		}
	}

	return result
}

/**************************************************************************************************
** ParseExtensions turns a comma-separated extension list into the normalized form candidate
** listings compare against: lowercase, leading dot, surrounding spaces trimmed, empty entries
** dropped.
**
** @param list - Comma-separated extensions, with or without leading dots
** @return []string - Normalized extensions in input order
**************************************************************************************************/
func ParseExtensions(list string) []string {
	parts := strings.Split(list, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}

	return result
}

/**************************************************************************************************
** Contains checks if a string is present in a slice of strings.
**
** @param list - Slice of strings to search
** @param s - String to search for
** @return bool - True if string is present in slice, false otherwise
**************************************************************************************************/
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

/**************************************************************************************************
** NumericPrefixLess orders folder names the way an operator numbers them: names with a
** leading number sort by that number ("2" before "10"), numbered names come before unnumbered
** ones, and everything else falls back to plain string comparison.
**
** @param a - First name to compare
** @param b - Second name to compare
** @return bool - True if a sorts before b
**************************************************************************************************/
func NumericPrefixLess(a, b string) bool {
	aNum, aOK := leadingNumber(a)
	bNum, bOK := leadingNumber(b)

	switch {
	case aOK && bOK:
		if aNum != bNum {
			return aNum < bNum
		}
		return a < b
	case aOK:
		return true
	case bOK:
		return false
	default:
		return a < b
	}
}

/**************************************************************************************************
** leadingNumber extracts the integer a name starts with, if any.
**
** @param name - Name to inspect
** @return int - Parsed leading number
** @return bool - False when the name does not start with a digit
**************************************************************************************************/
func leadingNumber(name string) (int, bool) {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
