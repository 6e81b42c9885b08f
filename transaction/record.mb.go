// AUTO GENERATED FILE (by membufc proto compiler v0.4.0)
package transaction

import (
	"bytes"
	"fmt"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

/////////////////////////////////////////////////////////////////////////////
// message TransactionRecord

// reader

type TransactionRecord struct {
	// BlockHeight primitives.BlockHeight
	// BlockTimestamp primitives.TimestampNano
	// TransactionTimestamp primitives.TimestampNano
	// ExecutionResult protocol.ExecutionResult
	// OutputArgumentArray primitives.PackedArgumentArray

	// internal
	// implements membuffers.Message
	_message membuffers.InternalMessage
}

func (x *TransactionRecord) String() string {
	if x == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{BlockHeight:%s,BlockTimestamp:%s,TransactionTimestamp:%s,ExecutionResult:%s,OutputArgumentArray:%s,}", x.StringBlockHeight(), x.StringBlockTimestamp(), x.StringTransactionTimestamp(), x.StringExecutionResult(), x.StringOutputArgumentArray())
}

var _TransactionRecord_Scheme = []membuffers.FieldType{membuffers.TypeUint64, membuffers.TypeUint64, membuffers.TypeUint64, membuffers.TypeUint16, membuffers.TypeBytes}
var _TransactionRecord_Unions = [][]membuffers.FieldType{}

func TransactionRecordReader(buf []byte) *TransactionRecord {
	x := &TransactionRecord{}
	x._message.Init(buf, membuffers.Offset(len(buf)), _TransactionRecord_Scheme, _TransactionRecord_Unions)
	return x
}

func (x *TransactionRecord) IsValid() bool {
	return x._message.IsValid()
}

func (x *TransactionRecord) Raw() []byte {
	return x._message.RawBuffer()
}

func (x *TransactionRecord) Equal(y *TransactionRecord) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return bytes.Equal(x.Raw(), y.Raw())
}

func (x *TransactionRecord) BlockHeight() primitives.BlockHeight {
	return primitives.BlockHeight(x._message.GetUint64(0))
}

func (x *TransactionRecord) RawBlockHeight() []byte {
	return x._message.RawBufferForField(0, 0)
}

func (x *TransactionRecord) MutateBlockHeight(v primitives.BlockHeight) error {
	return x._message.SetUint64(0, uint64(v))
}

func (x *TransactionRecord) StringBlockHeight() string {
	return fmt.Sprintf("%s", x.BlockHeight())
}

func (x *TransactionRecord) BlockTimestamp() primitives.TimestampNano {
	return primitives.TimestampNano(x._message.GetUint64(1))
}

func (x *TransactionRecord) RawBlockTimestamp() []byte {
	return x._message.RawBufferForField(1, 0)
}

func (x *TransactionRecord) MutateBlockTimestamp(v primitives.TimestampNano) error {
	return x._message.SetUint64(1, uint64(v))
}

func (x *TransactionRecord) StringBlockTimestamp() string {
	return fmt.Sprintf("%s", x.BlockTimestamp())
}

func (x *TransactionRecord) TransactionTimestamp() primitives.TimestampNano {
	return primitives.TimestampNano(x._message.GetUint64(2))
}

func (x *TransactionRecord) RawTransactionTimestamp() []byte {
	return x._message.RawBufferForField(2, 0)
}

func (x *TransactionRecord) MutateTransactionTimestamp(v primitives.TimestampNano) error {
	return x._message.SetUint64(2, uint64(v))
}

func (x *TransactionRecord) StringTransactionTimestamp() string {
	return fmt.Sprintf("%s", x.TransactionTimestamp())
}

func (x *TransactionRecord) ExecutionResult() protocol.ExecutionResult {
	return protocol.ExecutionResult(x._message.GetUint16(3))
}

func (x *TransactionRecord) RawExecutionResult() []byte {
	return x._message.RawBufferForField(3, 0)
}

func (x *TransactionRecord) MutateExecutionResult(v protocol.ExecutionResult) error {
	return x._message.SetUint16(3, uint16(v))
}

func (x *TransactionRecord) StringExecutionResult() string {
	return x.ExecutionResult().String()
}

func (x *TransactionRecord) OutputArgumentArray() primitives.PackedArgumentArray {
	return primitives.PackedArgumentArray(x._message.GetBytes(4))
}

func (x *TransactionRecord) RawOutputArgumentArray() []byte {
	return x._message.RawBufferForField(4, 0)
}

func (x *TransactionRecord) RawOutputArgumentArrayWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(4, 0)
}

func (x *TransactionRecord) MutateOutputArgumentArray(v primitives.PackedArgumentArray) error {
	return x._message.SetBytes(4, []byte(v))
}

func (x *TransactionRecord) StringOutputArgumentArray() string {
	return fmt.Sprintf("%s", x.OutputArgumentArray())
}

// builder

type TransactionRecordBuilder struct {
	BlockHeight          primitives.BlockHeight
	BlockTimestamp       primitives.TimestampNano
	TransactionTimestamp primitives.TimestampNano
	ExecutionResult      protocol.ExecutionResult
	OutputArgumentArray  primitives.PackedArgumentArray

	// internal
	// implements membuffers.Builder
	_builder               membuffers.InternalBuilder
	_overrideWithRawBuffer []byte
}

func (w *TransactionRecordBuilder) Write(buf []byte) (err error) {
	if w == nil {
		return
	}
	w._builder.NotifyBuildStart()
	defer w._builder.NotifyBuildEnd()
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	if w._overrideWithRawBuffer != nil {
		return w._builder.WriteOverrideWithRawBuffer(buf, w._overrideWithRawBuffer)
	}
	w._builder.Reset()
	w._builder.WriteUint64(buf, uint64(w.BlockHeight))
	w._builder.WriteUint64(buf, uint64(w.BlockTimestamp))
	w._builder.WriteUint64(buf, uint64(w.TransactionTimestamp))
	w._builder.WriteUint16(buf, uint16(w.ExecutionResult))
	w._builder.WriteBytes(buf, []byte(w.OutputArgumentArray))
	return nil
}

func (w *TransactionRecordBuilder) HexDump(prefix string, offsetFromStart membuffers.Offset) (err error) {
	if w == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	w._builder.Reset()
	w._builder.HexDumpUint64(prefix, offsetFromStart, "TransactionRecord.BlockHeight", uint64(w.BlockHeight))
	w._builder.HexDumpUint64(prefix, offsetFromStart, "TransactionRecord.BlockTimestamp", uint64(w.BlockTimestamp))
	w._builder.HexDumpUint64(prefix, offsetFromStart, "TransactionRecord.TransactionTimestamp", uint64(w.TransactionTimestamp))
	w._builder.HexDumpUint16(prefix, offsetFromStart, "TransactionRecord.ExecutionResult", uint16(w.ExecutionResult))
	w._builder.HexDumpBytes(prefix, offsetFromStart, "TransactionRecord.OutputArgumentArray", []byte(w.OutputArgumentArray))
	return nil
}

func (w *TransactionRecordBuilder) GetSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	return w._builder.GetSize()
}

func (w *TransactionRecordBuilder) CalcRequiredSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	w.Write(nil)
	return w._builder.GetSize()
}

func (w *TransactionRecordBuilder) Build() *TransactionRecord {
	buf := make([]byte, w.CalcRequiredSize())
	if w.Write(buf) != nil {
		return nil
	}
	return TransactionRecordReader(buf)
}

func TransactionRecordBuilderFromRaw(raw []byte) *TransactionRecordBuilder {
	return &TransactionRecordBuilder{_overrideWithRawBuffer: raw}
}
