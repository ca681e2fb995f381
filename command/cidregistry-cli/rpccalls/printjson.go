// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"fmt"

	"github.com/bitmark-inc/cidregistry/util"
)

// in verbose mode show each request and reply under a title
func (client *Client) printJson(title string, message interface{}) error {
	if !client.verbose {
		return nil
	}

	fmt.Fprintf(client.handle, "%s:\n", title)
	return util.PrintJSON(client.handle, message)
}
