// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"sync"
)

type executionContext struct {
	contextId      primitives.ExecutionContextId
	blockHeight    primitives.BlockHeight
	accessScope    protocol.ExecutionAccessScope
	contractName   primitives.ContractName
	signerAddress  primitives.ClientAddress
	transientState *transientState
}

type executionContextProvider struct {
	mutex          sync.RWMutex
	activeContexts map[string]*executionContext
	lastContextId  uint64
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		activeContexts: make(map[string]*executionContext),
	}
}

func (cp *executionContextProvider) allocateExecutionContext(blockHeight primitives.BlockHeight, accessScope protocol.ExecutionAccessScope) (primitives.ExecutionContextId, *executionContext) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	newContext := &executionContext{
		blockHeight: blockHeight,
		accessScope: accessScope,
	}
	if accessScope == protocol.ACCESS_SCOPE_READ_WRITE {
		newContext.transientState = newTransientState()
	}

	cp.lastContextId++
	contextId := make([]byte, 8)
	membuffers.WriteUint64(contextId, cp.lastContextId)
	newContext.contextId = contextId

	cp.activeContexts[string(contextId)] = newContext
	return newContext.contextId, newContext
}

func (cp *executionContextProvider) destroyExecutionContext(contextId primitives.ExecutionContextId) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	delete(cp.activeContexts, string(contextId))
}

func (cp *executionContextProvider) loadExecutionContext(contextId primitives.ExecutionContextId) *executionContext {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return cp.activeContexts[string(contextId)]
}

func (cp *executionContextProvider) numberOfActiveContexts() int {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return len(cp.activeContexts)
}
