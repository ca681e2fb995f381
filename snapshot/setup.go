// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/registry"
)

// backend names
const (
	FileBackend    = "file"
	LevelDBBackend = "leveldb"
)

// Configuration - snapshot section of the configuration file
type Configuration struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	File      string `gluamapper:"file" json:"file"`
	Directory string `gluamapper:"directory" json:"directory"`
	Timeout   int    `gluamapper:"timeout" json:"timeout"` // seconds
}

// Backend - a durable store for the registry
type Backend interface {
	registry.Persister
	Load() registry.Accounts
	Read() (registry.Accounts, error)
	Close() error
}

// New - create the backend selected by the configuration
func New(log *logger.L, configuration Configuration) (Backend, error) {
	switch configuration.Backend {
	case "", FileBackend:
		f, err := NewFile(log, configuration)
		if nil != err {
			return nil, err
		}
		return f, nil
	case LevelDBBackend:
		l, err := NewLevelDB(log, configuration)
		if nil != err {
			return nil, err
		}
		return l, nil
	default:
		return nil, fault.InvalidBackend
	}
}

func (c Configuration) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}
