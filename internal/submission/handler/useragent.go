package handler

import "github.com/mssola/useragent"

// channelSummary renders a User-Agent as a short "Browser on OS" label
// for submission logs (e.g. "Chrome on Android"). Best effort only;
// unparseable agents come back as "unknown".
func channelSummary(uaString string) string {
	if uaString == "" {
		return "unknown"
	}

	ua := useragent.New(uaString)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "unknown"
	}
	os := ua.OSInfo().Name
	if os == "" {
		os = "unknown"
	}
	return browser + " on " + os
}
