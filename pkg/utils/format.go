package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var krPrinter = message.NewPrinter(language.Korean)

// FormatTravelTime renders minutes as "45분", "2시간" or "1시간 30분".
func FormatTravelTime(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d분", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d시간", h)
	}
	return fmt.Sprintf("%d시간 %d분", h, m)
}

// FormatTravelCost renders an amount in won with thousands separators, e.g. "12,500원".
// Zero renders as "무료".
func FormatTravelCost(amount int) string {
	if amount <= 0 {
		return "무료"
	}
	return krPrinter.Sprintf("%d원", amount)
}
