package main

import (
	"fmm-setup/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// fmm-setup installs the Family Media Manager on a WordPress site:
//   - Copies the WordPress plugin from the release bundle into wp-content/plugins
//   - Optionally installs the mobile web app (PWA) and points it at the site's API
//   - Collects the Google OAuth client credentials and saves everything to
//     ~/.fmm-setup/config.json for the plugin settings page
//
// Without arguments it runs an interactive terminal wizard. The `install`
// command does the same work from flags for scripted setups.
//
// Error handling strategy:
//   - Validation problems are reported to the user and the step can be retried
//   - A failed install step stops there; files already copied are left in place
//   - Fatal errors in command execution cause the program to exit with a non-zero status
func main() {
	cmd.Execute()
}
