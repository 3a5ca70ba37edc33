// Package domain contains the core value objects and pure rules of the hashtag
// service: how a requested count is normalized, how raw model candidates become
// canonical hashtags, and how hashtags accumulate into a case-insensitive set
// across generation attempts. Nothing here performs I/O or keeps state beyond a
// single request.
package domain
