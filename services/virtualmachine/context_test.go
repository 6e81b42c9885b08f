// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestContextLoad(t *testing.T) {
	cp := newExecutionContextProvider()

	contextId1, _ := cp.allocateExecutionContext(1, protocol.ACCESS_SCOPE_READ_ONLY)
	defer cp.destroyExecutionContext(contextId1)

	contextId2, _ := cp.allocateExecutionContext(2, protocol.ACCESS_SCOPE_READ_ONLY)
	defer cp.destroyExecutionContext(contextId2)

	require.NotEqual(t, contextId1, contextId2, "contextId1 should be different from contextId2")

	c1 := cp.loadExecutionContext(contextId1)
	require.EqualValues(t, 1, c1.blockHeight, "loaded context with contextId1 should be 1")

	c2 := cp.loadExecutionContext(contextId2)
	require.EqualValues(t, 2, c2.blockHeight, "loaded context with contextId2 should be 2")
}

func TestContextDestroy(t *testing.T) {
	cp := newExecutionContextProvider()

	contextId, _ := cp.allocateExecutionContext(1, protocol.ACCESS_SCOPE_READ_ONLY)
	require.Equal(t, 1, cp.numberOfActiveContexts())

	cp.destroyExecutionContext(contextId)
	require.Nil(t, cp.loadExecutionContext(contextId), "destroyed context should not load")
	require.Equal(t, 0, cp.numberOfActiveContexts())
}

func TestContextTransientStateOnlyForReadWrite(t *testing.T) {
	cp := newExecutionContextProvider()

	readOnlyId, readOnly := cp.allocateExecutionContext(1, protocol.ACCESS_SCOPE_READ_ONLY)
	defer cp.destroyExecutionContext(readOnlyId)
	require.Nil(t, readOnly.transientState)

	readWriteId, readWrite := cp.allocateExecutionContext(1, protocol.ACCESS_SCOPE_READ_WRITE)
	defer cp.destroyExecutionContext(readWriteId)
	require.NotNil(t, readWrite.transientState)
}
