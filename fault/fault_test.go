// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/havona-inc/havonad/fault"
)

var (
	errAccessOne   = fault.AccessDeniedError("access one")
	errExistsOne   = fault.ExistsError("exists one")
	errInvalidOne  = fault.InvalidError("invalid one")
	errLengthOne   = fault.LengthError("length one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errProcessOne  = fault.ProcessError("process one")
	errRecordOne   = fault.RecordError("record one")
	errReplayOne   = fault.ReplayError("replay one")
)

// test that the various error classes can be distinguished
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		access   bool
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
		replay   bool
	}{
		{errAccessOne, true, false, false, false, false, false, false, false},
		{errExistsOne, false, true, false, false, false, false, false, false},
		{errInvalidOne, false, false, true, false, false, false, false, false},
		{errLengthOne, false, false, false, true, false, false, false, false},
		{errNotFoundOne, false, false, false, false, true, false, false, false},
		{errProcessOne, false, false, false, false, false, true, false, false},
		{errRecordOne, false, false, false, false, false, false, true, false},
		{errReplayOne, false, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAccessDenied(err) != e.access {
			t.Errorf("%d: expected 'access denied' == %v for err = %v", i, e.access, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
		if fault.IsErrReplay(err) != e.replay {
			t.Errorf("%d: expected 'replay' == %v for err = %v", i, e.replay, err)
		}
	}
}

// ensure the store errors have the correct classes
func TestStoreErrors(t *testing.T) {
	if !fault.IsErrAccessDenied(fault.AccessDenied) {
		t.Errorf("AccessDenied has wrong class")
	}
	if !fault.IsErrAccessDenied(fault.Unauthorized) {
		t.Errorf("Unauthorized has wrong class")
	}
	if !fault.IsErrRecord(fault.VersionLimitExceeded) {
		t.Errorf("VersionLimitExceeded has wrong class")
	}
	if !fault.IsErrReplay(fault.SignatureReplayed) {
		t.Errorf("SignatureReplayed has wrong class")
	}
	if !fault.IsErrLength(fault.BatchTooLarge) {
		t.Errorf("BatchTooLarge has wrong class")
	}
	if !fault.IsErrNotFound(fault.RecordNotFound) {
		t.Errorf("RecordNotFound has wrong class")
	}
}
