// Package migrations holds the schema migrations, registered via init()
// so importing the package is enough to make them runnable from the CLI.
package migrations
