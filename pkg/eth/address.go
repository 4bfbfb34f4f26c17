package eth

import (
	"regexp"
	"strings"
)

// ZeroAddress is the sentinel used for the native currency and as the
// null identity.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var addressRegex = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

func IsAddress(addr string) bool {
	return addressRegex.MatchString(addr)
}

func IsZero(addr string) bool {
	return Normalize(addr) == ZeroAddress
}

func Normalize(addr string) string {
	addr = strings.ToLower(addr)
	if !strings.HasPrefix(addr, "0x") {
		addr = "0x" + addr
	}

	return addr
}
