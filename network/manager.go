package network

import (
	"context"
	"sync"
	"time"

	"github.com/DrDelphi/FomoBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
)

var log = logger.GetOrCreate("network")

type chainProxy interface {
	GetNetworkConfig(ctx context.Context) (*sdkData.NetworkConfig, error)
	GetLatestHyperBlockNonce(ctx context.Context) (uint64, error)
}

// NetworkManager - follows the chain and serves its block height as the game clock
type NetworkManager struct {
	proxy        chainProxy
	pollInterval time.Duration

	mut    sync.RWMutex
	nonce  uint64
	origin uint64
}

// NewNetworkManager - creates a new NetworkManager object
func NewNetworkManager(cfg *data.AppConfig) (*NetworkManager, error) {
	proxy := blockchain.NewElrondProxy(cfg.Network.Proxy, nil)

	return newNetworkManager(proxy)
}

func newNetworkManager(proxy chainProxy) (*NetworkManager, error) {
	if proxy == nil {
		return nil, errNilProxy
	}

	networkConfig, err := proxy.GetNetworkConfig(context.Background())
	if err != nil {
		log.Error("can not get network config from proxy", "error", err)
		return nil, err
	}
	if networkConfig == nil {
		return nil, errNilNetworkConfig
	}

	pollInterval := time.Duration(networkConfig.RoundDuration) * time.Millisecond
	if pollInterval < minPollInterval {
		pollInterval = minPollInterval
	}

	networkManager := &NetworkManager{
		proxy:        proxy,
		pollInterval: pollInterval,
	}

	err = networkManager.refresh(context.Background())
	if err != nil {
		return nil, err
	}

	return networkManager, nil
}

// LatestNonce returns the highest block nonce seen so far
func (nm *NetworkManager) LatestNonce() uint64 {
	nm.mut.RLock()
	defer nm.mut.RUnlock()

	return nm.nonce
}

// SetOrigin - sets the block nonce counted as tick zero
func (nm *NetworkManager) SetOrigin(origin uint64) {
	nm.mut.Lock()
	nm.origin = origin
	nm.mut.Unlock()
}

// CurrentTick returns the number of blocks produced since the origin
func (nm *NetworkManager) CurrentTick() uint64 {
	nm.mut.RLock()
	defer nm.mut.RUnlock()

	if nm.nonce < nm.origin {
		return 0
	}

	return nm.nonce - nm.origin
}

// StartPolling - follows the chain until the context is done
func (nm *NetworkManager) StartPolling(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(nm.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Debug("network polling stopped")
				return
			case <-ticker.C:
				err := nm.refresh(ctx)
				if err != nil {
					log.Warn("can not get latest block nonce", "error", err)
				}
			}
		}
	}()
}

func (nm *NetworkManager) refresh(ctx context.Context) error {
	nonce, err := nm.proxy.GetLatestHyperBlockNonce(ctx)
	if err != nil {
		return err
	}

	nm.mut.Lock()
	if nonce > nm.nonce {
		nm.nonce = nonce
	}
	nm.mut.Unlock()

	return nil
}
