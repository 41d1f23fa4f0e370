package message

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnexpectedTopic = errors.New("unexpected topic")

// UplinkTopic is the subscription filter for device uplinks of every
// application.
const UplinkTopic = "+/devices/+/up"

// Topic identifies the application and device an uplink was published for.
type Topic struct {
	AppID    string
	DeviceID string
}

// ParseTopic splits "<app-id>/devices/<dev-id>/up".
func ParseTopic(topic string) (Topic, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[1] != "devices" || parts[3] != "up" || parts[0] == "" || parts[2] == "" {
		return Topic{}, fmt.Errorf("Message:ParseTopic:%w: %q", ErrUnexpectedTopic, topic)
	}
	return Topic{AppID: parts[0], DeviceID: parts[2]}, nil
}

func (t Topic) String() string {
	return t.AppID + "/devices/" + t.DeviceID + "/up"
}
