// Package cli implements the sponcom command-line interface.
//
// Commands:
//   - add: register a sponsor with a credit ceiling
//   - list: show sponsors and remaining credit
//   - history: show the gratitude log, joined to commit attachments
//   - thank: manually thank a random set of sponsors
//   - hook: prepare-commit-msg entry point
//   - install-hook: write the hook script into .git/hooks
//
// Every command opens the store itself and closes it on all exit
// paths. Errors carry exit codes through ExitError: 1 for operation
// failures, 2 for usage errors raised before any transaction opens.
package cli
