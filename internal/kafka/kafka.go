package kafka

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
)

var ErrNotUplink = errors.New("record is not an archived uplink")

// TopicHeader carries the MQTT topic an archived uplink was received on.
const TopicHeader = "mqtt_topic"

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// UplinkRecord wraps one raw uplink for the archive topic. Records are keyed
// by device so that one device's uplinks stay in one partition, in order.
func UplinkRecord(deviceID, topic string, payload []byte) kafka.Message {
	return kafka.Message{
		Key:     []byte(deviceID),
		Value:   payload,
		Headers: []kafka.Header{{Key: TopicHeader, Value: []byte(topic)}},
	}
}

// ParseUplinkRecord returns the MQTT topic and raw payload of an archived
// uplink.
func ParseUplinkRecord(m kafka.Message) (string, []byte, error) {
	for _, h := range m.Headers {
		if h.Key == TopicHeader {
			return string(h.Value), m.Value, nil
		}
	}
	return "", nil, ErrNotUplink
}
