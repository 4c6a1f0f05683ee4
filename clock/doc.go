// Package clock provides the time sources and timezone helpers behind
// the server's tools.
//
// The package defines the Clock interface and two concrete sources: the
// system wall clock and a fixed clock pinned to a configured instant for
// deterministic tests and replay sessions. It also carries the timezone
// resolution and timestamp validation shared by all tools, plus the
// catalog of common IANA zones exposed through the time://zones
// resource.
//
// Usage:
//
//	clk, err := clock.NewClock(logger, cfg)
//	loc, err := clock.LoadZone("America/New_York")
//	fmt.Println(clk.Now().In(loc).Format("2006-01-02 15:04:05 MST"))
package clock
