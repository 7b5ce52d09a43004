// Package notify delivers verification emails and one-time SMS codes.
//
// Transports are chosen by configuration: real providers talk HTTP through
// resty, the "log" providers only write the message to the logger and are
// meant for local runs.
package notify
