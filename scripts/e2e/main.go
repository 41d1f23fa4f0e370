package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Steps:
// 1. Publish internal/db/testdata/mixed_stream.jsonl to the broker
// 2. Wait for the ingester to persist it
// 3. Check device and event counts through the history API

const (
	broker  = "tcp://localhost:1883"
	baseURL = "http://localhost:8080"
	fixture = "../../internal/db/testdata/mixed_stream.jsonl"

	expectedDevices      = 3
	expectedMeasurements = 9
	expectedSupervisory  = 1
)

func main() {
	file, err := os.Open(fixture)
	if err != nil {
		panic(fmt.Errorf("failed to open fixture: %w", err))
	}
	defer file.Close()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID("thsensor-e2e")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(fmt.Errorf("failed to connect to broker: %w", token.Error()))
	}
	defer client.Disconnect(250)

	published := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		var head struct {
			DevID string `json:"dev_id"`
		}
		if err := json.Unmarshal(line, &head); err != nil {
			fmt.Printf("skipping undecodable fixture line: %v\n", err)
			continue
		}
		token := client.Publish("e2e/devices/"+head.DevID+"/up", 1, false, line)
		if token.Wait() && token.Error() != nil {
			panic(fmt.Errorf("failed to publish: %w", token.Error()))
		}
		published++
	}
	if err := scanner.Err(); err != nil {
		panic(err)
	}
	fmt.Printf("Published %d uplinks\n", published)

	// Ingestion is synchronous per message, a few seconds is plenty.
	time.Sleep(5 * time.Second)

	var devices struct {
		Devices []struct {
			DeviceID    string `json:"device_id"`
			DisplayName string `json:"display_name"`
		} `json:"devices"`
	}
	getJSON("/devices", &devices)

	var measurements, supervisory struct {
		Events []json.RawMessage `json:"events"`
	}
	getJSON("/events?kind=measurement", &measurements)
	getJSON("/events?kind=supervisory", &supervisory)

	failed := false
	check := func(name string, got, want int) {
		status := "ok"
		if got != want {
			status = "MISMATCH"
			failed = true
		}
		fmt.Printf("%-14s expected %d, got %d [%s]\n", name, want, got, status)
	}
	check("devices", len(devices.Devices), expectedDevices)
	check("measurements", len(measurements.Events), expectedMeasurements)
	check("supervisory", len(supervisory.Events), expectedSupervisory)

	if failed {
		fmt.Println("E2E test failed (run against an empty database)")
		os.Exit(1)
	}
	fmt.Println("E2E test completed")
}

func getJSON(path string, v any) {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		panic(fmt.Errorf("GET %s: %w", path, err))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		panic(fmt.Errorf("GET %s: %w: %s", path, err, body))
	}
}
