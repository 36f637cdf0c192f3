// -- cmd/version.go --
package cmd

// Version is set at build time via:
//
//	go build -ldflags "-X github.com/hireloop/autopilot/cmd.Version=v1.2.3"
var Version = "dev"
