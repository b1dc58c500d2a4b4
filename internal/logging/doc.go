// Package logging builds the zap logger used by the CLI and handed to
// client.LoggedClient.
//
// Production output is JSON, development output is colored console text.
// Logs go to stderr unless output paths are configured, so command output
// on stdout stays clean.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "warning", OutputPaths: []string{"/var/log/wpcall.log"}})
//	if err != nil {
//		return err
//	}
//	defer logger.Sync()
package logging
