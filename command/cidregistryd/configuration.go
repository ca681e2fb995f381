// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/configuration"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/rpc/cid"
	"github.com/bitmark-inc/cidregistry/rpc/listeners"
	"github.com/bitmark-inc/cidregistry/snapshot"
	"github.com/bitmark-inc/cidregistry/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultSnapshotFile     = "cidregistry.snapshot"
	defaultLevelDBDirectory = "cidregistry.leveldb"
	defaultSnapshotTimeout  = 5 // seconds
	defaultSignatureWindow  = 300
	defaultKeyFile          = "rpc.key"
	defaultCertificateFile  = "rpc.crt"
	defaultLogDirectory     = "log"
	defaultLogFile          = "cidregistryd.log"
	defaultLogCount         = 10          //  number of log files retained
	defaultLogSize          = 1024 * 1024 // rotate when <logfile> exceeds this size
	defaultRPCClients       = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// Configuration - the complete daemon configuration
type Configuration struct {
	DataDirectory  string                     `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string                     `gluamapper:"pidfile" json:"pidfile"`
	Snapshot       snapshot.Configuration     `gluamapper:"snapshot" json:"snapshot"`
	ClientRPC      listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Authentication cid.Configuration          `gluamapper:"authentication" json:"authentication"`
	Logging        logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Snapshot: snapshot.Configuration{
			Backend:   snapshot.FileBackend,
			File:      defaultSnapshotFile,
			Directory: defaultLevelDBDirectory,
			Timeout:   defaultSnapshotTimeout,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Authentication: cid.Configuration{
			RequireSignature: false,
			ValidateCID:      false,
			SignatureWindow:  defaultSignatureWindow,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Snapshot.Backend = strings.ToLower(options.Snapshot.Backend)
	switch options.Snapshot.Backend {
	case snapshot.FileBackend, snapshot.LevelDBBackend:
	default:
		return nil, fault.InvalidBackend
	}

	if options.Snapshot.Timeout <= 0 {
		options.Snapshot.Timeout = defaultSnapshotTimeout
	}
	if options.Authentication.SignatureWindow <= 0 {
		options.Authentication.SignatureWindow = defaultSignatureWindow
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a valid directory", options.DataDirectory))
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a directory", options.DataDirectory))
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Snapshot.File,
		&options.Snapshot.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file is placed in the log directory by the logger
	if !util.IsPlainName(options.Logging.File) {
		return nil, errors.New(fmt.Sprintf("Files: %q is not plain name", options.Logging.File))
	}

	// create directories if they do not already exist
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}
