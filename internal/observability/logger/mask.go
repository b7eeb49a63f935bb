package logger

import "strings"

// MaskMobile masks a counterparty mobile number, preserving only the last 4
// digits. Mobile numbers are the only personally identifying field this
// service logs.
func MaskMobile(value string) string {
	return maskLast4(value)
}

func maskLast4(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}
