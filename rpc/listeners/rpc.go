// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/cidregistry/counter"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/logger"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex

	log             *logger.L
	listeners       []net.Listener
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
	wg              sync.WaitGroup
}

// Serve - start accepting on every listen address
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		l, err := tls.Listen(r.ipType[i], listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		r.wg.Add(1)
		go r.accept(l)
	}
	return nil
}

// Addresses - the bound addresses, useful when listening on port zero
func (r *rpcListener) Addresses() []string {
	r.Lock()
	defer r.Unlock()

	addresses := make([]string, 0, len(r.listeners))
	for _, l := range r.listeners {
		addresses = append(addresses, l.Addr().String())
	}
	return addresses
}

// Close - stop accepting; open connections run to completion
func (r *rpcListener) Close() error {
	r.Lock()
	listeners := r.listeners
	r.listeners = nil
	r.Unlock()

	for _, l := range listeners {
		_ = l.Close()
	}
	r.wg.Wait()
	return nil
}

func (r *rpcListener) accept(listen net.Listener) {
	defer r.wg.Done()

	for {
		conn, err := listen.Accept()
		if err != nil {
			r.log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !r.count.Acquire(r.maxConnections) {
			r.log.Warnf("connection limit: %d reached, rejecting: %s", r.maxConnections, conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			r.count.Release()
		}()
	}
	_ = listen.Close()
}

// NewRPC - validate configuration and create a JSON-RPC over TLS listener
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if nil == configuration || nil == log || nil == count || nil == server || nil == tlsConfig {
		return nil, fault.MissingParameters
	}
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	listen := make([]string, len(configuration.Listen))
	copy(listen, configuration.Listen)

	// validate all listen addresses
	ipType, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	r := &rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		server:          server,
		count:           count,
		tlsConfig:       tlsConfig,
		ipType:          ipType,
	}
	return r, nil
}

// parse the listen addresses, rewriting "*:PORT" in place and
// returning the network for each
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen {
			log.Errorf("rpc server listen error: %s", fault.InvalidIpAddress)
			return nil, fault.InvalidIpAddress
		}
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			_, port, err := net.SplitHostPort(listen)
			if nil != err {
				log.Errorf("rpc server listen: %q  error: %s", listen, err)
				return nil, fault.InvalidIpAddress
			}
			addrs[i] = "[::]:" + port
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
