//go:build windows
// +build windows

package main

// Daemonize runs proc in the foreground, detaching is not supported on
// windows, use the service command instead.
func Daemonize(proc func()) {
	proc()
}
