// Package testsupport builds isolated configurations and table fixtures for
// command and integration tests.
package testsupport
