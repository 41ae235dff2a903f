// Package api implements the HTTP surface of the script generation
// service: the submission form and its POST endpoint, the lead views,
// and the static asset route. Handlers validate input, hand accepted
// submissions to the background task runner, and answer immediately;
// they never wait on generation, mail delivery, or persistence.
package api
