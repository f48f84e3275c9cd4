package classifier

import (
	"strings"

	"github.com/mssola/useragent"
)

// Device types
const (
	DevicePC     = "PC"
	DeviceTablet = "Tablet"
	DeviceMobile = "Mobile"
	DeviceOther  = "Other"
)

// Classification describes a user agent
type Classification struct {
	OS         string
	Browser    string
	DeviceType string
	IsBot      bool
}

// Classifier classifies user agent strings
type Classifier interface {
	Classify(userAgent string) Classification
}

// UserAgentClassifier is the default Classifier
type UserAgentClassifier struct{}

// NewUserAgentClassifier creates a new UserAgentClassifier
func NewUserAgentClassifier() *UserAgentClassifier {
	return &UserAgentClassifier{}
}

// Classify parses the user agent and reports its OS, browser, device type and bot flag
func (c *UserAgentClassifier) Classify(userAgent string) Classification {
	ua := useragent.New(userAgent)

	browser, _ := ua.Browser()
	result := Classification{
		OS:      ua.OSInfo().Name,
		Browser: browser,
		IsBot:   ua.Bot(),
	}
	if result.OS == "" {
		result.OS = "Other"
	}
	if result.Browser == "" {
		result.Browser = "Other"
	}
	result.DeviceType = deviceType(ua, userAgent)

	return result
}

func deviceType(ua *useragent.UserAgent, raw string) string {
	if ua.Bot() {
		return DeviceOther
	}

	lower := strings.ToLower(raw)
	platform := ua.Platform()
	// PC takes precedence over tablet and mobile
	switch {
	case isDesktopPlatform(platform) && !ua.Mobile():
		return DevicePC
	case platform == "iPad" || strings.Contains(lower, "tablet"):
		return DeviceTablet
	case strings.Contains(lower, "android") && !strings.Contains(lower, "mobile"):
		// Android tablets omit the "Mobile" token
		return DeviceTablet
	case ua.Mobile():
		return DeviceMobile
	default:
		return DeviceOther
	}
}

func isDesktopPlatform(platform string) bool {
	return strings.HasPrefix(platform, "Windows") || platform == "Macintosh" || platform == "X11"
}
