// Package task manages background job queuing, processing, and lifecycle.
// It provides mechanisms for asynchronous execution of long-running
// operations like generating a movie-script excerpt from a submitted
// premise, ensuring they don't block HTTP request handling. Jobs are
// deliberately non-durable: once the submitter has been acknowledged,
// delivery of the downstream work is best-effort.
package task
