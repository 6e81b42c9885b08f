// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"encoding/hex"
	"github.com/pkg/errors"
	"sync"
)

type waiterChannel struct {
	c chan *txOutput
	k string
}

type waiterChannels map[*waiterChannel]*waiterChannel

// lets several requests for the same transaction wait on its single execution
type waiter struct {
	mutex sync.Mutex
	m     map[string]waiterChannels
}

func newWaiter() *waiter {
	return &waiter{
		m: make(map[string]waiterChannels),
	}
}

func (w *waiter) add(k string) *waiterChannel {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	wcs, exists := w.m[k]
	if !exists {
		wcs = make(waiterChannels)
		w.m[k] = wcs
	}
	wc := &waiterChannel{make(chan *txOutput, 1), k} // buffered so complete never blocks
	wcs[wc] = wc

	return wc
}

func (w *waiter) deleteByKey(k string) waiterChannels {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if wcs, exists := w.m[k]; exists {
		delete(w.m, k)
		return wcs
	}
	return nil
}

func (w *waiter) deleteByChannel(wc *waiterChannel) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if wcs, exists := w.m[wc.k]; exists {
		if _, existsC := wcs[wc]; existsC {
			delete(wcs, wc)
			if len(wcs) == 0 {
				delete(w.m, wc.k)
			}
			close(wc.c)
		}
	}
}

func (w *waiter) wait(ctx context.Context, wc *waiterChannel) (*txOutput, error) {
	select {
	case <-ctx.Done():
		w.deleteByChannel(wc)
		return nil, errors.Wrapf(ctx.Err(), "timed out waiting for transaction %s", hex.EncodeToString([]byte(wc.k)))
	case response, open := <-wc.c:
		if !open {
			return nil, errors.Errorf("waiting aborted")
		}
		return response, nil
	}
}

func (w *waiter) complete(k string, out *txOutput) {
	for wc := range w.deleteByKey(k) {
		wc.c <- out
		close(wc.c)
	}
}
