// Package services contains the core application logic, implementing the
// driving ports using the driven ports. Services are transport-agnostic:
// they know nothing about HTTP, SQLite or the CLI.
package services
