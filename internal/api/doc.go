// Package api handles incoming HTTP requests for the deck JSON API, request
// validation and response formatting. It acts as an adapter between HTTP
// clients and the deck service, translating HTTP concerns to deck operations.
package api
