package redis

import "time"

// Key layout: <prefix><userID>:earned (set) and <prefix><userID>:records (hash)
const (
	DefaultKeyPrefix = "treedoctor:badges:"
	keySuffixSet     = ":earned"
	keySuffixRecords = ":records"
)

// Connection timeouts
const (
	DialTimeout  = 5 * time.Second
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 3 * time.Second
)

// Error messages
const (
	ErrMsgPingFailed   = "failed to ping redis"
	ErrMsgListFailed   = "failed to list earned badges"
	ErrMsgAwardFailed  = "failed to award badge"
	ErrMsgEncodeFailed = "failed to encode badge record"
	ErrMsgDecodeFailed = "failed to decode badge record"
)
