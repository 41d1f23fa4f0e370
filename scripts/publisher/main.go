package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
)

// Publishes a newline-delimited file of TTN uplink documents to the broker,
// one message per line, on <app-id>/devices/<dev_id>/up.

var (
	broker   string
	appID    string
	qos      int
	interval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "publisher <file.jsonl>",
	Short: "Publish recorded uplinks to an MQTT broker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := publishFile(args[0])
		if err != nil {
			return err
		}
		slog.Info("Published uplinks", "count", n, "broker", broker)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&broker, "broker", "tcp://localhost:1883", "MQTT broker URL")
	rootCmd.Flags().StringVar(&appID, "app-id", "th-sensors", "application id used in the topic")
	rootCmd.Flags().IntVar(&qos, "qos", 1, "publish QoS")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "pause between messages")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func publishFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("thsensor-publisher-%d", os.Getpid()))
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return 0, fmt.Errorf("connect %s: %w", broker, token.Error())
	}
	defer client.Disconnect(250)

	n := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var head struct {
			DevID          string `json:"dev_id"`
			HardwareSerial string `json:"hardware_serial"`
		}
		// Undecodable lines are still published; the ingester is expected to drop them.
		_ = json.Unmarshal(line, &head)
		devID := head.DevID
		if devID == "" {
			devID = head.HardwareSerial
		}
		if devID == "" {
			devID = "unknown"
		}

		topic := fmt.Sprintf("%s/devices/%s/up", appID, devID)
		token := client.Publish(topic, byte(qos), false, append([]byte(nil), line...))
		if token.Wait() && token.Error() != nil {
			return n, fmt.Errorf("publish line %d: %w", n+1, token.Error())
		}
		n++
		if interval > 0 {
			time.Sleep(interval)
		}
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}
