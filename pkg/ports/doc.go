// Package ports defines the boundary contracts between the Kinetic engines
// and their host: the page surface (geometry, scrolling, frames, observer
// primitive), the presentation sinks, the dialog view, the script source
// and the outbound transport. Implementations live under pkg/adapters and
// internal/adapters; the engines depend only on these interfaces.
package ports
