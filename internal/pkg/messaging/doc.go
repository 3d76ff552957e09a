// Package messaging provides a small API for publishing and consuming
// messages over NATS.
//
// Business code relies on the Messaging interface so it stays independent
// from the broker client and can use fakes in tests.
package messaging
