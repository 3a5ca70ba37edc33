// Package api handles incoming HTTP requests, request validation, and
// response formatting for the hashtag service. It acts as an adapter between
// external clients and service.HashtagService, translating HTTP concerns to
// generation requests and service errors back to status codes.
package api
