package enrichment

import (
	"strings"

	"github.com/mssola/user_agent"
)

// ClientInfo summarizes the software a request came from, for access logs.
type ClientInfo struct {
	Browser    string
	Version    string
	OS         string
	DeviceType string
}

func (c ClientInfo) String() string {
	browser := c.Browser
	if c.Version != "" {
		browser += "/" + c.Version
	}
	return browser + " (" + c.OS + ", " + c.DeviceType + ")"
}

func ParseUserAgent(uaString string) ClientInfo {
	if strings.TrimSpace(uaString) == "" {
		return ClientInfo{Browser: "unknown", OS: "unknown", DeviceType: "unknown"}
	}

	ua := user_agent.New(uaString)

	browser, version := ua.Browser()
	if browser == "" {
		browser = "unknown"
	}

	os := ua.OS()
	if os == "" {
		os = "unknown"
	}

	deviceType := "desktop"
	switch {
	case ua.Bot():
		deviceType = "bot"
	case ua.Mobile():
		deviceType = "mobile"
	}

	return ClientInfo{
		Browser:    browser,
		Version:    majorVersion(version),
		OS:         os,
		DeviceType: deviceType,
	}
}

func majorVersion(version string) string {
	major, _, _ := strings.Cut(version, ".")
	return major
}
