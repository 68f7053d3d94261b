// Package timeouts defines shared timeout constants used across Adenine processes.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to report SERVING.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single unary call issued by the command-line client.
const GRPCRequest = 5 * time.Second

// ReadHeader limits how long the metrics HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful shutdown.
const Shutdown = 5 * time.Second
