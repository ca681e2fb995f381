// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/registry"
)

// key prefixes
const (
	accountPrefix    = 'A'
	quarantinePrefix = 'Q'
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// LevelDB - snapshot held in a LevelDB database
type LevelDB struct {
	mu sync.Mutex

	log     *logger.L
	db      *leveldb.DB
	timeout time.Duration
	damaged bool
}

// NewLevelDB - open or create the database directory
func NewLevelDB(log *logger.L, configuration Configuration) (*LevelDB, error) {
	if nil == log {
		return nil, fault.MissingParameters
	}
	if "" == configuration.Directory {
		return nil, fault.MissingParameters
	}

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	db, err := leveldb.OpenFile(configuration.Directory, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened database: %q  version: 0x%x", configuration.Directory, currentDBVersion)

	return &LevelDB{
		log:     log,
		db:      db,
		timeout: configuration.timeout(),
	}, nil
}

// Load - read all account records
//
// if any record is unreadable all account records are moved under the
// quarantine prefix and loading starts empty
func (l *LevelDB) Load() registry.Accounts {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.log

	if nil == l.db {
		log.Error("load from closed database")
		return make(registry.Accounts)
	}

	accounts, err := l.read()
	if nil != err {
		log.Errorf("corrupt snapshot database  error: %s  starting empty", err)
		l.quarantine()
		return make(registry.Accounts)
	}

	if 0 == len(accounts) {
		log.Info("no snapshot: database has no accounts  starting empty")
	} else {
		log.Infof("restored: %d accounts", len(accounts))
	}
	return accounts
}

// Read - decode all account records without changing the database
func (l *LevelDB) Read() (registry.Accounts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if nil == l.db {
		return nil, fault.NotInitialised
	}
	return l.read()
}

// must be called with the lock held
func (l *LevelDB) read() (registry.Accounts, error) {
	accounts := make(registry.Accounts)

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{accountPrefix}), nil)
	defer iter.Release()

	for iter.Next() {
		key, record, err := unpackAccount(iter.Value())
		if nil == err && !bytes.Equal(accountKey(key), iter.Key()) {
			err = fmt.Errorf("database key: %x  does not match account: %q", iter.Key(), key)
		}
		if nil != err {
			return nil, err
		}
		accounts[key] = record
	}

	if err := iter.Error(); nil != err {
		return nil, err
	}
	return accounts, nil
}

// move every account record to:
//   quarantinePrefix ++ time (8 bytes, big endian) ++ original key
// so the next save cannot delete them
//
// if that fails the database is marked damaged and refuses all saves
//
// must be called with the lock held
func (l *LevelDB) quarantine() {
	prefix := make([]byte, 9)
	prefix[0] = quarantinePrefix
	binary.BigEndian.PutUint64(prefix[1:], uint64(time.Now().UnixNano()))

	batch := new(leveldb.Batch)
	moved := 0

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{accountPrefix}), nil)
	for iter.Next() {
		key := append(append([]byte{}, prefix...), iter.Key()...)
		batch.Put(key, append([]byte{}, iter.Value()...))
		batch.Delete(append([]byte{}, iter.Key()...))
		moved += 1
	}
	iter.Release()

	err := iter.Error()
	if nil == err {
		err = l.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
	}
	if nil != err {
		l.damaged = true
		l.log.Criticalf("cannot quarantine corrupt records  error: %s  saving disabled", err)
		return
	}
	l.log.Warnf("corrupt snapshot database: %d records moved under prefix: %x", moved, prefix)
}

// Save - replace all account records in a single synced batch
func (l *LevelDB) Save(accounts registry.Accounts) error {

	// pack here as accounts is only stable until return
	packed := make(map[string][]byte, len(accounts))
	for key, record := range accounts {
		packed[string(accountKey(key))] = packAccount(key, record)
	}

	err := runBounded(l.timeout, func(b *bounded) error {
		return l.write(packed, b)
	})
	if nil != err {
		l.log.Errorf("save: %d accounts  error: %s", len(accounts), err)
		return fault.Persistence(err)
	}

	l.log.Debugf("saved: %d accounts", len(accounts))
	return nil
}

func (l *LevelDB) write(packed map[string][]byte, b *bounded) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if nil == l.db {
		return fault.NotInitialised
	}
	if l.damaged {
		return fault.SnapshotDamaged
	}

	batch := new(leveldb.Batch)

	// remove any account no longer present
	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{accountPrefix}), nil)
	for iter.Next() {
		if _, ok := packed[string(iter.Key())]; !ok {
			batch.Delete(append([]byte{}, iter.Key()...))
		}
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return err
	}

	for key, value := range packed {
		batch.Put([]byte(key), value)
	}

	if !b.commit() {
		l.log.Warnf("abandoned batch of: %d records", batch.Len())
		return fault.PersistenceTimeout
	}

	return l.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
}

// Close - close the database
func (l *LevelDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func accountKey(key string) []byte {
	return append([]byte{accountPrefix}, key...)
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
