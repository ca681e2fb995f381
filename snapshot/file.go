// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cidregistry/fault"
	"github.com/bitmark-inc/cidregistry/registry"
	"github.com/bitmark-inc/cidregistry/util"
)

type tagType byte

// record types in snapshot file
const (
	taggedBOF     tagType = iota
	taggedEOF     tagType = iota
	taggedAccount tagType = iota
)

// the BOF tag to check file version
// exact match is required
var bofData = []byte("cidregistry-snapshot v2.0")

var eofData = []byte("EOF")

// suffix for a snapshot that could not be read
const corruptSuffix = ".corrupt"

// File - snapshot held in a single file
type File struct {
	log      *logger.L
	filename string
	timeout  time.Duration

	// called after the temporary file is written and before it
	// replaces the snapshot
	beforeCommit func()
}

// NewFile - create a file backend
func NewFile(log *logger.L, configuration Configuration) (*File, error) {
	if nil == log {
		return nil, fault.MissingParameters
	}
	if "" == configuration.File {
		return nil, fault.MissingParameters
	}

	return &File{
		log:      log,
		filename: configuration.File,
		timeout:  configuration.timeout(),
	}, nil
}

// Load - read all accounts from the snapshot file
func (f *File) Load() registry.Accounts {
	log := f.log

	fh, err := os.Open(f.filename)
	if os.IsNotExist(err) {
		log.Infof("no snapshot: %q  starting empty", f.filename)
		return make(registry.Accounts)
	}
	if nil != err {
		log.Errorf("unreadable snapshot: %q  error: %s  starting empty", f.filename, err)
		return make(registry.Accounts)
	}

	accounts, err := decode(bufio.NewReader(fh))
	fh.Close()

	if nil != err {
		log.Errorf("corrupt snapshot: %q  error: %s  starting empty", f.filename, err)
		f.quarantine()
		return make(registry.Accounts)
	}

	log.Infof("restored: %d accounts from: %q", len(accounts), f.filename)
	return accounts
}

// Read - decode the snapshot file without changing anything on disk
//
// a missing file is an empty store
func (f *File) Read() (registry.Accounts, error) {
	fh, err := os.Open(f.filename)
	if os.IsNotExist(err) {
		return make(registry.Accounts), nil
	}
	if nil != err {
		return nil, err
	}
	defer fh.Close()

	return decode(bufio.NewReader(fh))
}

// keep the unreadable file so the next save cannot overwrite it
func (f *File) quarantine() {
	corrupt := f.filename + corruptSuffix
	err := os.Rename(f.filename, corrupt)
	if nil != err {
		f.log.Criticalf("cannot move corrupt snapshot: %q  to: %q  error: %s", f.filename, corrupt, err)
		return
	}
	f.log.Warnf("corrupt snapshot moved to: %q", corrupt)
}

// Save - replace the snapshot file with the given accounts
func (f *File) Save(accounts registry.Accounts) error {

	// encode here as accounts is only stable until return
	buffer, err := encode(accounts)
	if nil != err {
		f.log.Errorf("encode: %d accounts  error: %s", len(accounts), err)
		return fault.Persistence(err)
	}

	err = runBounded(f.timeout, func(b *bounded) error {
		return f.write(buffer, b)
	})
	if nil != err {
		f.log.Errorf("save: %q  error: %s", f.filename, err)
		return fault.Persistence(err)
	}

	f.log.Debugf("saved: %d accounts  %d bytes", len(accounts), len(buffer))
	return nil
}

// write to a temporary file in the same directory then rename over
// the snapshot
func (f *File) write(buffer []byte, b *bounded) error {
	directory, name := filepath.Split(f.filename)
	if "" == directory {
		directory = "."
	}

	tmp, err := os.CreateTemp(directory, name+".tmp-*")
	if nil != err {
		return err
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	_, err = tmp.Write(buffer)
	if nil == err {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if nil != err {
		return err
	}
	if nil != closeErr {
		return closeErr
	}

	if nil != f.beforeCommit {
		f.beforeCommit()
	}

	if !b.commit() {
		f.log.Warnf("abandoned write: %q", tmpName)
		return fault.PersistenceTimeout
	}

	err = os.Rename(tmpName, f.filename)
	if nil != err {
		return err
	}
	committed = true

	// make the rename durable; not all platforms allow this
	if d, err := os.Open(directory); nil == err {
		_ = d.Sync()
		d.Close()
	}
	return nil
}

// Close - nothing is held open between saves
func (f *File) Close() error {
	return nil
}

func encode(accounts registry.Accounts) ([]byte, error) {
	buffer := &bytes.Buffer{}

	err := writeRecord(buffer, taggedBOF, bofData)
	if nil != err {
		return nil, err
	}

	for _, key := range accounts.Keys() {
		err := writeRecord(buffer, taggedAccount, packAccount(key, accounts[key]))
		if nil != err {
			return nil, err
		}
	}

	err = writeRecord(buffer, taggedEOF, eofData)
	if nil != err {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// recordReader - varint lengths are read a byte at a time
type recordReader interface {
	io.Reader
	io.ByteReader
}

func decode(r recordReader) (registry.Accounts, error) {

	// must have BOF record first
	tag, packed, err := readRecord(r)
	if nil != err {
		return nil, err
	}
	if taggedBOF != tag {
		return nil, fmt.Errorf("expected BOF: %d but read: %d", taggedBOF, tag)
	}
	if !bytes.Equal(bofData, packed) {
		return nil, fmt.Errorf("expected BOF: %q but read: %q", bofData, packed)
	}

	accounts := make(registry.Accounts)

restore_loop:
	for {
		tag, packed, err := readRecord(r)
		if nil != err {
			return nil, err
		}

		switch tag {

		case taggedEOF:
			if !bytes.Equal(eofData, packed) {
				return nil, fmt.Errorf("expected EOF: %q but read: %q", eofData, packed)
			}
			break restore_loop

		case taggedAccount:
			key, record, err := unpackAccount(packed)
			if nil != err {
				return nil, err
			}
			if _, ok := accounts[key]; ok {
				return nil, fmt.Errorf("duplicate account: %q", key)
			}
			accounts[key] = record

		default:
			return nil, fmt.Errorf("read invalid tag: 0x%02x", tag)
		}
	}

	// nothing may follow EOF
	n, err := r.Read(make([]byte, 1))
	if 0 != n {
		return nil, fmt.Errorf("data after EOF")
	}
	if io.EOF != err && nil != err {
		return nil, err
	}

	return accounts, nil
}

// write a tagged record: tag ++ length (varint) ++ data
func writeRecord(w io.Writer, tag tagType, packed []byte) error {
	header := make([]byte, 1, 1+util.Varint64MaximumBytes)
	header[0] = byte(tag)
	header = util.AppendVarint64(header, uint64(len(packed)))

	_, err := w.Write(header)
	if nil != err {
		return err
	}
	_, err = w.Write(packed)
	return err
}

// read a tagged record; a short read is an error
func readRecord(r recordReader) (tagType, []byte, error) {
	tag, err := r.ReadByte()
	if io.EOF == err {
		return taggedEOF, nil, fmt.Errorf("missing EOF record")
	}
	if nil != err {
		return taggedEOF, nil, fmt.Errorf("read record header: %w", err)
	}

	length := make([]byte, 0, util.Varint64MaximumBytes)
	for {
		b, err := r.ReadByte()
		if nil != err {
			return taggedEOF, nil, fmt.Errorf("read record length: %w", err)
		}
		length = append(length, b)
		if 0 == b&0x80 || util.Varint64MaximumBytes == len(length) {
			break
		}
	}
	count, n := util.FromVarint64(length)
	if n != len(length) || int64(count) < 0 {
		return taggedEOF, nil, fmt.Errorf("invalid record length: %x", length)
	}

	// grows with the data actually present so a corrupt length
	// cannot force a huge allocation
	buffer := &bytes.Buffer{}
	_, err = io.CopyN(buffer, r, int64(count))
	if nil != err {
		return taggedEOF, nil, fmt.Errorf("read record data: %d bytes  error: %w", count, err)
	}
	return tagType(tag), buffer.Bytes(), nil
}
