// Package common provides shared types and constants used across the
// SnoozeTabs client-server communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for a custom socket path.
	SocketPathEnv = "SNOOZETABS_SOCKET_PATH"

	// TCPPortEnv is the environment variable for a custom TCP port.
	TCPPortEnv = "SNOOZETABS_TCP_PORT"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "SNOOZETABS_DEBUG"

	// RPCSecretEnv is the environment variable holding the bearer token
	// required by the extension-facing JSON-RPC endpoint.
	RPCSecretEnv = "SNOOZETABS_RPC_SECRET"
)
