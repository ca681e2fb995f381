// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/rpc/certificate"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/listeners"
	"github.com/bitmark-inc/cidregistry/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.Mutex

	log *logger.L

	listener    listeners.Listener
	connections counter.Counter

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the client RPC listeners
func Initialise(
	configuration *listeners.RPCConfiguration,
	authentication cid.Configuration,
	registry server.Registry,
	decoder account.Decoder,
	version string,
) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if nil == configuration || nil == registry || nil == decoder {
		return fault.MissingParameters
	}

	tlsConfig, certificateFingerprint, err := certificate.Load(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	if authentication.RequireSignature {
		log.Info("signed requests required")
	}
	if authentication.ValidateCID {
		log.Info("cid syntax validated")
	}

	s := server.Create(
		logger.New("cid-rpc"),
		version,
		&globalData.connections,
		registry,
		decoder,
		account.ED25519Verifier{},
		authentication,
	)

	rpcListener, err := listeners.NewRPC(
		configuration,
		log,
		&globalData.connections,
		s,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		rpcListener.Close()
		return err
	}
	globalData.listener = rpcListener

	// all data initialised
	globalData.initialised = true

	return nil
}

// Addresses - where the listeners are bound
func Addresses() []string {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil
	}
	return globalData.listener.Addresses()
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	_ = globalData.listener.Close()
	globalData.listener = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
