// Package server exposes a core.Reconciler as a JSON HTTP API.
//
// Routes:
//
//	GET  /api/repositories?search=&language=&sort=&tab=all|starred
//	GET  /api/starred
//	POST /api/repositories/{id}/star
//	GET  /api/languages
//	POST /api/refresh
//	GET  /health
//	GET  /swagger/
//
// Every response except /health and the swagger files is an [APIResponse].
package server
