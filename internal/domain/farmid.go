package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Farm ids are "{seed_id}#{index}": globally unique, minted from the seed's
// counter at creation time and stable for the farm's lifetime.
const farmIDSeparator = "#"

// MakeFarmID formats a farm id from its seed and index.
func MakeFarmID(seedID string, index uint32) string {
	return seedID + farmIDSeparator + strconv.FormatUint(uint64(index), 10)
}

// ParseFarmID splits a farm id back into (seed_id, index).
func ParseFarmID(farmID string) (string, uint32, error) {
	sep := strings.LastIndex(farmID, farmIDSeparator)
	if sep <= 0 || sep == len(farmID)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFarmID, farmID)
	}
	seedID := farmID[:sep]
	if strings.Contains(seedID, farmIDSeparator) {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFarmID, farmID)
	}
	index, err := strconv.ParseUint(farmID[sep+1:], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFarmID, farmID)
	}
	return seedID, uint32(index), nil
}
