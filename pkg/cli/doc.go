// Package cli implements the storeadmin command tree.
//
// Every command resolves configuration through cliconfig, talks to the store
// backend through storeapi, and honours the shared output contract: with
// --json only JSON is written to stdout, otherwise aligned tables. Commands
// that change data print the refreshed list afterwards unless --quiet is set.
package cli
