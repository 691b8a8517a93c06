// Package ports defines the interfaces (ports) that connect the sender
// core to infrastructure adapters and to the application.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the sender needs from external systems (a
// non-blocking transport) and what it offers to the application (the
// frame status listener) without specifying how those needs are
// fulfilled.
//
// # Port Interfaces
//
//   - [Transport]: non-blocking fragment egress, consumed by the engine
//   - [StatusListener]: terminal frame status delivery to the application
//   - [Logger]: structured logging abstraction (alias of pkg/log.Logger)
//
// The core (internal/app, internal/queue, internal/pool) depends only on
// these interfaces. Adapters under internal/adapters implement them with
// concrete transports (UDP datagrams, WebRTC data channels) and loggers.
package ports
