// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/fixtures"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/snapshot"
	"github.com/bitmark-inc/cidregistry/util"
)

func writeConfiguration(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "cidregistryd.conf")
	require.Nil(t, os.WriteFile(name, []byte(content), 0600), "write configuration")
	return name
}

func TestGetConfigurationDefaults(t *testing.T) {
	name := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.client_rpc = {
    listen = { "127.0.0.1:2150" },
}
return M
`)
	dir := filepath.Dir(name)

	c, err := getConfiguration(name)
	require.Nil(t, err, "parse")

	assert.Equal(t, filepath.Clean(dir), filepath.Clean(c.DataDirectory), "data directory")
	assert.Equal(t, "", c.PidFile, "no pid file")

	assert.Equal(t, snapshot.FileBackend, c.Snapshot.Backend, "backend")
	assert.Equal(t, filepath.Join(dir, defaultSnapshotFile), c.Snapshot.File, "snapshot file")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory), c.Snapshot.Directory, "database directory")
	assert.Equal(t, defaultSnapshotTimeout, c.Snapshot.Timeout, "timeout")

	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2150"}, c.ClientRPC.Listen, "listen")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), c.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, defaultKeyFile), c.ClientRPC.PrivateKey, "key")

	assert.False(t, c.Authentication.RequireSignature, "unsigned allowed")
	assert.False(t, c.Authentication.ValidateCID, "cid not validated")
	assert.Equal(t, defaultSignatureWindow, c.Authentication.SignatureWindow, "window")

	logDirectory := filepath.Join(dir, defaultLogDirectory)
	assert.Equal(t, logDirectory, c.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, c.Logging.File, "log file")
	info, err := os.Stat(logDirectory)
	require.Nil(t, err, "log directory created")
	assert.True(t, info.IsDir(), "is directory")
}

func TestGetConfigurationOverrides(t *testing.T) {
	name := writeConfiguration(t, `
local M = {}
M.data_directory = arg[0]:match("(.*/)")
M.pidfile = "cidregistryd.pid"
M.snapshot = {
    backend = "LevelDB",
    directory = "/var/lib/cidregistry/db",
    timeout = 2,
}
M.authentication = {
    require_signature = true,
    validate_cid = true,
    signature_window = 60,
}
return M
`)
	dir := filepath.Dir(name)

	c, err := getConfiguration(name)
	require.Nil(t, err, "parse")

	assert.Equal(t, filepath.Join(dir, "cidregistryd.pid"), c.PidFile, "pid file")
	assert.Equal(t, snapshot.LevelDBBackend, c.Snapshot.Backend, "backend lower cased")
	assert.Equal(t, "/var/lib/cidregistry/db", c.Snapshot.Directory, "absolute kept")
	assert.Equal(t, 2, c.Snapshot.Timeout, "timeout")
	assert.True(t, c.Authentication.RequireSignature, "signatures")
	assert.True(t, c.Authentication.ValidateCID, "validate")
	assert.Equal(t, 60, c.Authentication.SignatureWindow, "window")
}

func TestGetConfigurationErrors(t *testing.T) {
	_, err := getConfiguration(writeConfiguration(t, "return {}\n"))
	assert.NotNil(t, err, "missing data directory")

	_, err = getConfiguration(writeConfiguration(t, `return { data_directory = "/no/such/directory" }`))
	assert.NotNil(t, err, "data directory must exist")

	_, err = getConfiguration(writeConfiguration(t, `return { data_directory = ".", snapshot = { backend = "redis" } }`))
	assert.Equal(t, fault.InvalidBackend, err, "unknown backend")

	_, err = getConfiguration(writeConfiguration(t, `return { data_directory = ".", logging = { file = "sub/x.log" } }`))
	assert.NotNil(t, err, "log file must be a plain name")

	_, err = getConfiguration(filepath.Join(t.TempDir(), "missing.conf"))
	assert.NotNil(t, err, "missing file")
}

func TestListJSON(t *testing.T) {
	accounts := registry.Accounts{
		fixtures.Account1.String(): {
			Owner:     fixtures.Owner,
			Count:     1,
			LatestCID: fixtures.CID1,
		},
	}

	var out bytes.Buffer
	require.Nil(t, util.PrintJSON(&out, accounts), "print")

	var decoded map[string]map[string]interface{}
	require.Nil(t, json.Unmarshal(out.Bytes(), &decoded), "valid JSON")

	entry, ok := decoded[fixtures.Account1.String()]
	require.True(t, ok, "account present")
	assert.Equal(t, fixtures.Owner.String(), entry["owner"], "owner text")
	assert.Equal(t, float64(1), entry["cid_count"], "count")
	assert.Equal(t, fixtures.CID1, entry["latest_cid"], "cid")
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"), "current directory")
	assert.Equal(t, "/tmp/x/rpc.key", getFilenameWithDirectory([]string{"/tmp/x", "127.0.0.1"}, "rpc.key"), "directory")
}
