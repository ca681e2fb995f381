// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
)

var certificateData struct {
	sync.Once
	certificate string
	key         string
}

// Certificate - PEM certificate for a local test server
func Certificate() string {
	generateCertificate()
	return certificateData.certificate
}

// Key - PEM private key matching Certificate
func Key() string {
	generateCertificate()
	return certificateData.key
}

func generateCertificate() {
	certificateData.Do(func() {
		cert, key, err := certgen.NewTLSCertPair("cidregistry test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
		if nil != err {
			panic(err)
		}
		certificateData.certificate = string(cert)
		certificateData.key = string(key)
	})
}
