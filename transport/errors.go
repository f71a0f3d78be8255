package transport

import "errors"

var errBadCABundle = errors.New("transport: CA bundle contains no usable certificates")

var errConnClosed = errors.New("transport: connection closed")
