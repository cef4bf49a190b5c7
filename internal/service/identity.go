package service

import (
	"fmt"
	"strconv"
)

// ParseIdentity converts a token subject back into a user id.
func ParseIdentity(identity string) (uint, error) {
	id, err := strconv.ParseUint(identity, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad identity %q", ErrUnauthorized, identity)
	}
	return uint(id), nil
}

func identityOf(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
