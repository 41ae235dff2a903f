// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces for deployments that outgrow the local CSV table.
package postgres
