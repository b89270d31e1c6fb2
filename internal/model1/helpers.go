package model1

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fvbommel/sortorder"
)

var durationRX = regexp.MustCompile(`^(\d+[ydhms])+$`)

// Less returns true if v1 orders before v2. Numbers and ages (2d3h) compare
// by value, everything else in natural order. Ties fall back on the ids.
func Less(id1, id2, v1, v2 string) bool {
	if v1 == v2 {
		return sortorder.NaturalLess(id1, id2)
	}
	switch {
	case isNumber(v1) && isNumber(v2):
		return lessNumber(v1, v2)
	case isDuration(v1) && isDuration(v2):
		return lessDuration(v1, v2)
	default:
		return sortorder.NaturalLess(v1, v2)
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return err == nil
}

func isDuration(s string) bool {
	return durationRX.MatchString(s)
}

func lessNumber(s1, s2 string) bool {
	v1, _ := strconv.ParseFloat(strings.ReplaceAll(s1, ",", ""), 64)
	v2, _ := strconv.ParseFloat(strings.ReplaceAll(s2, ",", ""), 64)
	return v1 < v2
}

func lessDuration(s1, s2 string) bool {
	return durationToSeconds(s1) < durationToSeconds(s2)
}

func durationToSeconds(duration string) int64 {
	if duration == "" || duration == NAValue {
		return 0
	}
	num := make([]rune, 0, 5)
	var n, m int64
	for _, r := range duration {
		switch r {
		case 'y':
			m = 365 * 24 * 60 * 60
		case 'd':
			m = 24 * 60 * 60
		case 'h':
			m = 60 * 60
		case 'm':
			m = 60
		case 's':
			m = 1
		default:
			num = append(num, r)
			continue
		}
		n, num = n+runesToNum(num)*m, num[:0]
	}
	return n
}

func runesToNum(rr []rune) int64 {
	var r int64
	var m int64 = 1
	for i := len(rr) - 1; i >= 0; i-- {
		v := int64(rr[i] - '0')
		r += v * m
		m *= 10
	}
	return r
}
