// Package domain contains the core entities of the framecast sender:
// frames, their lifecycle states, terminal statuses, buffers, and the
// sentinel errors returned by the public API.
//
// The package has no dependencies on infrastructure. Pools, queues,
// the transmission engine and transports all operate on these entities.
package domain
