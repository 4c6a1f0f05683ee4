package clock

// CommonZones lists frequently requested IANA timezone names. It backs
// the time://zones resource so clients can discover valid arguments for
// the timezone parameter without guessing.
var CommonZones = []string{
	"UTC",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Asia/Singapore",
	"Asia/Kolkata",
	"Asia/Dubai",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Moscow",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Sao_Paulo",
	"Australia/Sydney",
	"Pacific/Auckland",
}
