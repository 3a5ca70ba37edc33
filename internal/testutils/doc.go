// Package testutils provides helpers shared by tests across packages: a fake
// Ollama backend that replays scripted replies, and small HTTP helpers for
// exercising the API through a real listener.
//
// Nothing in this package is imported by production code.
package testutils
