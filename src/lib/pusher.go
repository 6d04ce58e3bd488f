package lib

import (
	"fmt"
	"os"

	"github.com/pusher/pusher-http-go/v5"
)

var pusherClient *pusher.Client

func GetPusherClient() *pusher.Client {
	if pusherClient != nil {
		return pusherClient
	}
	pusherClient = &pusher.Client{
		AppID:   os.Getenv("PUSHER_APP_ID"),
		Key:     os.Getenv("PUSHER_KEY"),
		Secret:  os.Getenv("PUSHER_SECRET"),
		Cluster: os.Getenv("PUSHER_CLUSTER"),
		Secure:  true,
	}
	return pusherClient
}

// VendorChannel is the private channel a vendor dashboard listens on.
func VendorChannel(email string) string {
	return fmt.Sprintf("private-vendor-%s", channelSafe(email))
}

func channelSafe(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '=', r == ',', r == '.', r == ';':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

func PushToVendor(email string, event string, data any) error {
	return GetPusherClient().Trigger(VendorChannel(email), event, data)
}
