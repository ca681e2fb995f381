// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid

import (
	"time"

	gocid "github.com/ipfs/go-cid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cidregistry/account"
	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	// MaximumCIDLength - longest cid string accepted
	MaximumCIDLength = 4096

	// DefaultSignatureWindow - allowed clock difference for signed requests
	DefaultSignatureWindow = 5 * time.Minute
)

// Registry - the account operations served
type Registry interface {
	Initialise(account.Identifier, account.Credential) error
	StoreCID(account.Identifier, account.Credential, string) error
	Get(account.Identifier) (registry.Record, error)
	Save() error
}

// Configuration - authentication section of the configuration file
type Configuration struct {
	RequireSignature bool `gluamapper:"require_signature" json:"require_signature"`
	ValidateCID      bool `gluamapper:"validate_cid" json:"validate_cid"`
	SignatureWindow  int  `gluamapper:"signature_window" json:"signature_window"` // seconds
}

// CID - type for the RPC
type CID struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Registry    Registry
	Decoder     account.Decoder
	ValidateCID bool
	auth        *authenticator
}

// New - create the CID service
func New(log *logger.L, reg Registry, decoder account.Decoder, verifier account.Verifier, configuration Configuration) *CID {
	window := DefaultSignatureWindow
	if configuration.SignatureWindow > 0 {
		window = time.Duration(configuration.SignatureWindow) * time.Second
	}

	return &CID{
		Log:         log,
		Limiter:     ratelimit.New(),
		Registry:    reg,
		Decoder:     decoder,
		ValidateCID: configuration.ValidateCID,
		auth:        newAuthenticator(configuration.RequireSignature, window, verifier),
	}
}

// CID initialise
// --------------

// InitialiseArguments - arguments for RPC
type InitialiseArguments struct {
	Account   string            `json:"account"`             // base58 identifier
	Owner     string            `json:"owner"`               // public key
	Timestamp int64             `json:"timestamp"`           // unix seconds
	Signature account.Signature `json:"signature,omitempty"` // hex
}

// InitialiseReply - result of initialise RPC
type InitialiseReply struct{}

// Initialise - create a new account
func (c *CID) Initialise(arguments *InitialiseArguments, reply *InitialiseReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	log := c.Log
	log.Infof("CID.Initialise: account: %q  owner: %q", arguments.Account, arguments.Owner)

	id, err := account.IdentifierFromBase58(arguments.Account)
	if nil != err {
		return err
	}

	owner, err := c.Decoder.Decode(arguments.Owner)
	if nil != err {
		log.Debugf("owner: %q  error: %s", arguments.Owner, err)
		return err
	}

	err = c.auth.check(owner, InitialiseMessage(id, arguments.Timestamp), arguments.Timestamp, arguments.Signature)
	if nil != err {
		log.Warnf("initialise: %s  rejected: %s", id, err)
		return err
	}

	return c.Registry.Initialise(id, owner)
}

// CID store
// ---------

// StoreArguments - arguments for RPC
type StoreArguments struct {
	Account   string            `json:"account"`             // base58 identifier
	Signer    string            `json:"signer"`              // public key
	CID       string            `json:"cid"`                 // content identifier
	Timestamp int64             `json:"timestamp"`           // unix seconds
	Signature account.Signature `json:"signature,omitempty"` // hex
}

// StoreReply - result of store RPC
//
// count is read after the store so concurrent publications to the
// same account may already be included
type StoreReply struct {
	Count uint64 `json:"count"`
}

// Store - publish a cid to an account
func (c *CID) Store(arguments *StoreArguments, reply *StoreReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	log := c.Log
	log.Infof("CID.Store: account: %q  signer: %q  cid: %q", arguments.Account, arguments.Signer, arguments.CID)

	id, err := account.IdentifierFromBase58(arguments.Account)
	if nil != err {
		return err
	}

	signer, err := c.Decoder.Decode(arguments.Signer)
	if nil != err {
		log.Debugf("signer: %q  error: %s", arguments.Signer, err)
		return err
	}

	if err := c.checkCID(arguments.CID); nil != err {
		log.Debugf("cid: %q  error: %s", arguments.CID, err)
		return err
	}

	err = c.auth.check(signer, StoreMessage(id, arguments.Timestamp, arguments.CID), arguments.Timestamp, arguments.Signature)
	if nil != err {
		log.Warnf("store: %s  rejected: %s", id, err)
		return err
	}

	err = c.Registry.StoreCID(id, signer, arguments.CID)
	if nil != err {
		return err
	}

	record, err := c.Registry.Get(id)
	if nil != err {
		return err
	}
	reply.Count = record.Count

	return nil
}

func (c *CID) checkCID(s string) error {
	if "" == s {
		return fault.EmptyCID
	}
	if len(s) > MaximumCIDLength {
		return fault.RecordTooLong
	}
	if c.ValidateCID {
		if _, err := gocid.Decode(s); nil != err {
			return fault.InvalidCID
		}
	}
	return nil
}

// CID get
// -------

// GetArguments - arguments for RPC
type GetArguments struct {
	Account string `json:"account"` // base58 identifier
}

// GetReply - result of get RPC
type GetReply struct {
	Account   string `json:"account"`
	Owner     string `json:"owner"`
	Count     uint64 `json:"count"`
	LatestCID string `json:"latest_cid"`
}

// Get - current state of an account
func (c *CID) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	id, err := account.IdentifierFromBase58(arguments.Account)
	if nil != err {
		return err
	}

	record, err := c.Registry.Get(id)
	if nil != err {
		return err
	}

	reply.Account = id.String()
	reply.Owner = record.Owner.String()
	reply.Count = record.Count
	reply.LatestCID = record.LatestCID

	return nil
}

// CID flush
// ---------

// FlushArguments - empty arguments for flush request
type FlushArguments struct{}

// FlushReply - empty result from flush request
type FlushReply struct{}

// Flush - write the registry again after a persistence error
func (c *CID) Flush(_ *FlushArguments, _ *FlushReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	c.Log.Info("CID.Flush")

	return c.Registry.Save()
}
