package rpc

import "time"

// Service identity
const (
	ServiceName = "catalogscanner.v1.Scanner"
	ScanMethod  = "/" + ServiceName + "/Scan"
)

// Client configuration defaults
const (
	// Keepalive configuration
	DefaultKeepaliveTime    = 10 * time.Second
	DefaultKeepaliveTimeout = 3 * time.Second

	HealthCheckTimeout = 2 * time.Second
)

// Struct field names of the Scan request and response.
const (
	fieldPath      = "path"
	fieldLocale    = "locale"
	fieldMode      = "mode"
	fieldForSale   = "for_sale"
	fieldItems     = "items"
	fieldUnmatched = "unmatched"
)
