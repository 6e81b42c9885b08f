// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package trace

import (
	"context"
	"github.com/google/uuid"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type entryPointKeyType string

const entryPointKey entryPointKeyType = "ep"

const RequestId = "request-id"
const RequestTraceName = "X-AVS-TRACE-NAME"
const RequestTraceId = "X-AVS-TRACE-ID"

type Context struct {
	created   time.Time
	name      string
	requestId string
}

func NewContext(parent context.Context, name string) context.Context {
	ep := &Context{
		name:      name,
		created:   time.Now(),
		requestId: uuid.New().String(),
	}
	return context.WithValue(parent, entryPointKey, ep)
}

func PropagateContext(parent context.Context, tracingContext *Context) context.Context {
	return context.WithValue(parent, entryPointKey, tracingContext)
}

func FromContext(ctx context.Context) (e *Context, ok bool) {
	e, ok = ctx.Value(entryPointKey).(*Context)
	return
}

func (c *Context) Name() string {
	return c.name
}

func (c *Context) RequestId() string {
	return c.requestId
}

func (c *Context) Elapsed() time.Duration {
	return time.Since(c.created)
}

func (c *Context) String() string {
	return c.name + "/" + c.requestId
}

// clients that already hold a trace (the CLI, acceptance tests) pass it on so the node logs the same request id
func (c *Context) WriteTraceToRequest(r *http.Request) {
	r.Header.Set(RequestTraceName, c.name)
	r.Header.Set(RequestTraceId, c.requestId)
}

func NewFromRequest(parent context.Context, r *http.Request) context.Context {
	name := r.Header.Get(RequestTraceName)
	id := r.Header.Get(RequestTraceId)
	if name == "" || id == "" {
		return NewContext(parent, r.URL.Path)
	}

	return PropagateContext(parent, &Context{
		name:      name,
		created:   time.Now(),
		requestId: id,
	})
}

func LogFieldFrom(ctx context.Context) *log.Field {
	if trace, ok := FromContext(ctx); ok {
		return log.Stringable("trace", trace)
	}
	return log.String("trace", "NO-CONTEXT")
}
