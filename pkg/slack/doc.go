// Package slack translates Slack messages on demand. It handles [Events API]
// notifications (emoji reactions) and [interaction payloads] (a global shortcut
// and its modal), over either [HTTP webhooks or Socket Mode].
//
// [Events API]: https://docs.slack.dev/apis/events-api
// [interaction payloads]: https://docs.slack.dev/interactivity/handling-user-interaction
// [HTTP webhooks or Socket Mode]: https://docs.slack.dev/apis/events-api/comparing-http-socket-mode
package slack
