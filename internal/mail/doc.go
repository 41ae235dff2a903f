// Package mail provides the notification boundary of the application: a
// narrow Sender interface consumed by background jobs, the fixed message
// template for generated-script notifications, and an SMTP implementation.
package mail
