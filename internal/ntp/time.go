package ntp

import (
	"math"
	"time"
)

const (
	EraLength     int64 = 4_294_967_296 // 2^32
	UnixEraOffset int64 = 2_208_988_800 // 1970 - 1900 in seconds
)

// Epoch is the zero point of NTP era 0.
var Epoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// fractionUnit is the length of one fraction interval in seconds.
const fractionUnit = 1.0 / float64(EraLength)

// Decode converts a transmit timestamp to UTC at millisecond resolution.
// Seconds past 2036 wrap into era 0; no era disambiguation is done.
func Decode(seconds uint32, fraction uint32) time.Time {
	wholeMs := uint64(seconds) * 1000
	fracMs := uint64(math.Floor(float64(fraction) * fractionUnit * 1000))
	totalMs := wholeMs + fracMs
	return Epoch.Add(time.Duration(totalMs) * time.Millisecond)
}

// Encode is the inverse of Decode at nanosecond resolution. Times outside
// era 0 are truncated to 32 bits.
func Encode(t time.Time) (seconds uint32, fraction uint32) {
	unix := t.Unix()
	seconds = uint32(unix + UnixEraOffset)
	fraction = uint32(float64(t.Nanosecond()) / 1e9 * float64(EraLength))
	return seconds, fraction
}

func NTPTimestampEncoded(seconds uint32, fraction uint32) TimestampEncoded {
	return TimestampEncoded(seconds)<<32 | TimestampEncoded(fraction)
}
