// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	retry "github.com/Martinsos/retry-retry"
	"github.com/eclipse/paho.golang/paho"
	"github.com/lmittmann/tint"
)

// Connects to an MQTT broker, retrying until it is reachable. The retry
// policy is read from RETRY_* environment variables, e.g.
//
//	RETRY_PAUSE=PT0.5S RETRY_STRATEGY=exponential go run .
//
// The broker address defaults to localhost:1883 and can be overridden with
// MQTT_SERVER.
func main() {
	ctx := context.Background()
	log := slog.New(tint.NewHandler(os.Stdout, nil))

	opt := must(retry.OptionsFromEnv())
	opt.Apply(nil, retry.WithLogger(log))
	if opt.MaxTotalTime == 0 {
		opt.MaxTotalTime = time.Minute
	}

	client := must(retry.DoWithResult(ctx, connect, opt))
	defer func() { _ = client.Disconnect(&paho.Disconnect{}) }()

	log.Info("connected", "client_id", "mqttconnect-sample")
}

func connect(ctx context.Context) (*paho.Client, error) {
	server := os.Getenv("MQTT_SERVER")
	if server == "" {
		server = "localhost:1883"
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", server)
	if err != nil {
		return nil, retry.Retryable(err)
	}

	client := paho.NewClient(paho.ClientConfig{Conn: conn})
	connack, err := client.Connect(ctx, &paho.Connect{
		ClientID:   "mqttconnect-sample",
		CleanStart: true,
		KeepAlive:  30,
	})
	if err != nil {
		_ = conn.Close()
		return nil, retry.Retryable(err)
	}
	if connack.ReasonCode != 0 {
		_ = conn.Close()
		return nil, fmt.Errorf(
			"received CONNACK packet with error reason code %x",
			connack.ReasonCode,
		)
	}
	return client, nil
}

func check(e error) {
	if e != nil {
		panic(e)
	}
}

func must[T any](t T, e error) T {
	check(e)
	return t
}
