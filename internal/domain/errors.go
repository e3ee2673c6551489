package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)
