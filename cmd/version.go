package cmd

// Version is the application version, set at build time with
// -ldflags "-X github.com/viant/trxlint/cmd.Version=1.0.0"
var Version = "0.1.0"
