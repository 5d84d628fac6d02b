// Package cli parses command-line arguments into an app.Config. It owns the
// usage text and maps every user mistake to an ExitError with exit code 2,
// keeping os.Exit decisions out of the app layer.
package cli
