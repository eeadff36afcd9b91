package validate

import (
	"net"
	"regexp"
	"strings"
)

var (
	phoneRe  = regexp.MustCompile(`^1[3-9]\d{9}$`)
	pinRe    = regexp.MustCompile(`^\d{4}$`)
	resultRe = regexp.MustCompile(`^[A-Za-z]{4}$`)
)

// IsPhone matches the local mobile number format.
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func IsPIN(s string) bool {
	return pinRe.MatchString(s)
}

// IsResultCode matches a four-letter personality type such as INTJ.
func IsResultCode(s string) bool {
	return resultRe.MatchString(s)
}

// IsIPv4 accepts dotted-quad addresses only.
func IsIPv4(s string) bool {
	if strings.Count(s, ".") != 3 || strings.Contains(s, ":") {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}
