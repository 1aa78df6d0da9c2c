package network

import (
	"errors"
	"time"
)

const minPollInterval = time.Second

var (
	errNilProxy         = errors.New("nil proxy")
	errNilNetworkConfig = errors.New("nil network config")
)
