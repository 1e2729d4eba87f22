package installer

// DefaultTimezone is the timezone pre-selected at wizard mount.
const DefaultTimezone = "UTC"

// Timezones lists the zone identifiers the application supports. The wizard's
// timezone field is a selection over this list, never free text.
var Timezones = []string{
	"UTC",
	"Africa/Cairo",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/New_York",
	"America/Sao_Paulo",
	"America/Toronto",
	"Asia/Dubai",
	"Asia/Hong_Kong",
	"Asia/Kolkata",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Europe/Amsterdam",
	"Europe/Berlin",
	"Europe/Istanbul",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Paris",
	"Europe/Rome",
	"Pacific/Auckland",
}

// ValidTimezone reports whether tz is one of the supported identifiers.
func ValidTimezone(tz string) bool {
	for _, z := range Timezones {
		if z == tz {
			return true
		}
	}
	return false
}

// TimezoneIndex returns the position of tz in Timezones, or 0 if unknown.
func TimezoneIndex(tz string) int {
	for i, z := range Timezones {
		if z == tz {
			return i
		}
	}
	return 0
}
