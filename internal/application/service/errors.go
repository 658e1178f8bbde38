package service

import "errors"

var (
	// ErrInvalidBridgePayload is returned when the host hands back JSON that cannot be decoded
	ErrInvalidBridgePayload = errors.New("invalid bridge payload")

	// ErrReportNotFound is returned when a scan report does not exist
	ErrReportNotFound = errors.New("scan report not found")
)
