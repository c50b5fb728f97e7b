package utils

import (
	"fmt"
	"strings"
	"time"
)

// Landing domains used in the tracking line appended below post content.
var trackingDomains = map[string]string{
	"telegram": "vyud.online",
	"vk":       "vyud.online",
	"linkedin": "vyud.tech",
}

// GenerateUTM builds the campaign tag stored on a post at creation time,
// e.g. "?utm_source=telegram_jan26".
func GenerateUTM(platform string, now time.Time) string {
	month := strings.ToLower(now.Format("Jan"))
	year := now.Format("06")
	return fmt.Sprintf("?utm_source=%s_%s%s", platform, month, year)
}

// WithTrackingSuffix appends the platform tracking link on its own trailing
// line. Content without a utm tag goes out untouched.
func WithTrackingSuffix(platform, content, utmTag string) string {
	if utmTag == "" {
		return content
	}
	domain, ok := trackingDomains[platform]
	if !ok {
		domain = "vyud.online"
	}
	return content + "\n\n" + domain + utmTag
}
