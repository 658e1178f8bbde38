package memories

import "fmt"

// Native loopback API routes
const (
	routeAllowMedia         = "/api/config/allow_media/%d"
	routePendingRemoteCheck = "/api/image/pending-remote-check"
)

// Server API routes
const (
	routeDay = "/api/days/%d"
)

func allowMediaPath(allow bool) string {
	v := 0
	if allow {
		v = 1
	}
	return fmt.Sprintf(routeAllowMedia, v)
}

func dayPath(dayID int64) string {
	return fmt.Sprintf(routeDay, dayID)
}
