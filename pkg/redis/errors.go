package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("redis connection URL is empty")
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	// ErrNotReady is returned once every connection attempt has failed.
	ErrNotReady          = errors.New("redis not reachable after all connection attempts")
	ErrHealthcheckFailed = errors.New("redis ping failed")
)
