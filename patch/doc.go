// Package patch installs wrappers into live function tables.
//
// A host library publishes its interceptable call-sites as a Namespace of
// Modules, each a name → Func table, and always dispatches through that
// table. Replacing an entry therefore takes effect for every caller at once,
// without changes to the library or to caller code.
//
// Registry is the single source of truth for what is currently wrapped.
// Install and Remove mutate process-wide state: call them during setup and
// teardown, never while requests are being served.
package patch
