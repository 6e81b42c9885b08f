// AUTO GENERATED FILE (by membufc proto compiler v0.4.0)
package serializer

import (
	"bytes"
	"fmt"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

/////////////////////////////////////////////////////////////////////////////
// message SnapshotEntry

// reader

type SnapshotEntry struct {
	// ContractName primitives.ContractName
	// Key []byte
	// Value []byte

	// internal
	// implements membuffers.Message
	_message membuffers.InternalMessage
}

func (x *SnapshotEntry) String() string {
	if x == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{ContractName:%s,Key:%s,Value:%s,}", x.StringContractName(), x.StringKey(), x.StringValue())
}

var _SnapshotEntry_Scheme = []membuffers.FieldType{membuffers.TypeString, membuffers.TypeBytes, membuffers.TypeBytes}
var _SnapshotEntry_Unions = [][]membuffers.FieldType{}

func SnapshotEntryReader(buf []byte) *SnapshotEntry {
	x := &SnapshotEntry{}
	x._message.Init(buf, membuffers.Offset(len(buf)), _SnapshotEntry_Scheme, _SnapshotEntry_Unions)
	return x
}

func (x *SnapshotEntry) IsValid() bool {
	return x._message.IsValid()
}

func (x *SnapshotEntry) Raw() []byte {
	return x._message.RawBuffer()
}

func (x *SnapshotEntry) Equal(y *SnapshotEntry) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return bytes.Equal(x.Raw(), y.Raw())
}

func (x *SnapshotEntry) ContractName() primitives.ContractName {
	return primitives.ContractName(x._message.GetString(0))
}

func (x *SnapshotEntry) RawContractName() []byte {
	return x._message.RawBufferForField(0, 0)
}

func (x *SnapshotEntry) RawContractNameWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(0, 0)
}

func (x *SnapshotEntry) MutateContractName(v primitives.ContractName) error {
	return x._message.SetString(0, string(v))
}

func (x *SnapshotEntry) StringContractName() string {
	return fmt.Sprintf("%s", x.ContractName())
}

func (x *SnapshotEntry) Key() []byte {
	return x._message.GetBytes(1)
}

func (x *SnapshotEntry) RawKey() []byte {
	return x._message.RawBufferForField(1, 0)
}

func (x *SnapshotEntry) RawKeyWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(1, 0)
}

func (x *SnapshotEntry) MutateKey(v []byte) error {
	return x._message.SetBytes(1, v)
}

func (x *SnapshotEntry) StringKey() string {
	return fmt.Sprintf("%x", x.Key())
}

func (x *SnapshotEntry) Value() []byte {
	return x._message.GetBytes(2)
}

func (x *SnapshotEntry) RawValue() []byte {
	return x._message.RawBufferForField(2, 0)
}

func (x *SnapshotEntry) RawValueWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(2, 0)
}

func (x *SnapshotEntry) MutateValue(v []byte) error {
	return x._message.SetBytes(2, v)
}

func (x *SnapshotEntry) StringValue() string {
	return fmt.Sprintf("%x", x.Value())
}

// builder

type SnapshotEntryBuilder struct {
	ContractName primitives.ContractName
	Key          []byte
	Value        []byte

	// internal
	// implements membuffers.Builder
	_builder               membuffers.InternalBuilder
	_overrideWithRawBuffer []byte
}

func (w *SnapshotEntryBuilder) Write(buf []byte) (err error) {
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
	w._builder.WriteString(buf, string(w.ContractName))
	w._builder.WriteBytes(buf, w.Key)
	w._builder.WriteBytes(buf, w.Value)
	return nil
}

func (w *SnapshotEntryBuilder) HexDump(prefix string, offsetFromStart membuffers.Offset) (err error) {
	if w == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	w._builder.Reset()
	w._builder.HexDumpString(prefix, offsetFromStart, "SnapshotEntry.ContractName", string(w.ContractName))
	w._builder.HexDumpBytes(prefix, offsetFromStart, "SnapshotEntry.Key", w.Key)
	w._builder.HexDumpBytes(prefix, offsetFromStart, "SnapshotEntry.Value", w.Value)
	return nil
}

func (w *SnapshotEntryBuilder) GetSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	return w._builder.GetSize()
}

func (w *SnapshotEntryBuilder) CalcRequiredSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	w.Write(nil)
	return w._builder.GetSize()
}

func (w *SnapshotEntryBuilder) Build() *SnapshotEntry {
	buf := make([]byte, w.CalcRequiredSize())
	if w.Write(buf) != nil {
		return nil
	}
	return SnapshotEntryReader(buf)
}

func SnapshotEntryBuilderFromRaw(raw []byte) *SnapshotEntryBuilder {
	return &SnapshotEntryBuilder{_overrideWithRawBuffer: raw}
}

/////////////////////////////////////////////////////////////////////////////
// message StateSnapshot

// reader

type StateSnapshot struct {
	// BlockHeight primitives.BlockHeight
	// Timestamp primitives.TimestampNano
	// Entries []SnapshotEntry

	// internal
	// implements membuffers.Message
	_message membuffers.InternalMessage
}

func (x *StateSnapshot) String() string {
	if x == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{BlockHeight:%s,Timestamp:%s,Entries:%s,}", x.StringBlockHeight(), x.StringTimestamp(), x.StringEntries())
}

var _StateSnapshot_Scheme = []membuffers.FieldType{membuffers.TypeUint64, membuffers.TypeUint64, membuffers.TypeMessageArray}
var _StateSnapshot_Unions = [][]membuffers.FieldType{}

func StateSnapshotReader(buf []byte) *StateSnapshot {
	x := &StateSnapshot{}
	x._message.Init(buf, membuffers.Offset(len(buf)), _StateSnapshot_Scheme, _StateSnapshot_Unions)
	return x
}

func (x *StateSnapshot) IsValid() bool {
	return x._message.IsValid()
}

func (x *StateSnapshot) Raw() []byte {
	return x._message.RawBuffer()
}

func (x *StateSnapshot) Equal(y *StateSnapshot) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return bytes.Equal(x.Raw(), y.Raw())
}

func (x *StateSnapshot) BlockHeight() primitives.BlockHeight {
	return primitives.BlockHeight(x._message.GetUint64(0))
}

func (x *StateSnapshot) RawBlockHeight() []byte {
	return x._message.RawBufferForField(0, 0)
}

func (x *StateSnapshot) MutateBlockHeight(v primitives.BlockHeight) error {
	return x._message.SetUint64(0, uint64(v))
}

func (x *StateSnapshot) StringBlockHeight() string {
	return fmt.Sprintf("%s", x.BlockHeight())
}

func (x *StateSnapshot) Timestamp() primitives.TimestampNano {
	return primitives.TimestampNano(x._message.GetUint64(1))
}

func (x *StateSnapshot) RawTimestamp() []byte {
	return x._message.RawBufferForField(1, 0)
}

func (x *StateSnapshot) MutateTimestamp(v primitives.TimestampNano) error {
	return x._message.SetUint64(1, uint64(v))
}

func (x *StateSnapshot) StringTimestamp() string {
	return fmt.Sprintf("%s", x.Timestamp())
}

func (x *StateSnapshot) EntriesIterator() *StateSnapshotEntriesIterator {
	return &StateSnapshotEntriesIterator{iterator: x._message.GetMessageArrayIterator(2)}
}

type StateSnapshotEntriesIterator struct {
	iterator *membuffers.Iterator
}

func (i *StateSnapshotEntriesIterator) HasNext() bool {
	return i.iterator.HasNext()
}

func (i *StateSnapshotEntriesIterator) NextEntries() *SnapshotEntry {
	b, s := i.iterator.NextMessage()
	return SnapshotEntryReader(b[:s])
}

func (x *StateSnapshot) RawEntriesArray() []byte {
	return x._message.RawBufferForField(2, 0)
}

func (x *StateSnapshot) RawEntriesArrayWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(2, 0)
}

func (x *StateSnapshot) StringEntries() (res string) {
	res = "["
	for i := x.EntriesIterator(); i.HasNext(); {
		res += i.NextEntries().String() + ","
	}
	res += "]"
	return
}

// builder

type StateSnapshotBuilder struct {
	BlockHeight primitives.BlockHeight
	Timestamp   primitives.TimestampNano
	Entries     []*SnapshotEntryBuilder

	// internal
	// implements membuffers.Builder
	_builder               membuffers.InternalBuilder
	_overrideWithRawBuffer []byte
}

func (w *StateSnapshotBuilder) arrayOfEntries() []membuffers.MessageWriter {
	res := make([]membuffers.MessageWriter, len(w.Entries))
	for i, v := range w.Entries {
		res[i] = v
	}
	return res
}

func (w *StateSnapshotBuilder) Write(buf []byte) (err error) {
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
	w._builder.WriteUint64(buf, uint64(w.Timestamp))
	err = w._builder.WriteMessageArray(buf, w.arrayOfEntries())
	if err != nil {
		return
	}
	return nil
}

func (w *StateSnapshotBuilder) HexDump(prefix string, offsetFromStart membuffers.Offset) (err error) {
	if w == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	w._builder.Reset()
	w._builder.HexDumpUint64(prefix, offsetFromStart, "StateSnapshot.BlockHeight", uint64(w.BlockHeight))
	w._builder.HexDumpUint64(prefix, offsetFromStart, "StateSnapshot.Timestamp", uint64(w.Timestamp))
	err = w._builder.HexDumpMessageArray(prefix, offsetFromStart, "StateSnapshot.Entries", w.arrayOfEntries())
	if err != nil {
		return
	}
	return nil
}

func (w *StateSnapshotBuilder) GetSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	return w._builder.GetSize()
}

func (w *StateSnapshotBuilder) CalcRequiredSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	w.Write(nil)
	return w._builder.GetSize()
}

func (w *StateSnapshotBuilder) Build() *StateSnapshot {
	buf := make([]byte, w.CalcRequiredSize())
	if w.Write(buf) != nil {
		return nil
	}
	return StateSnapshotReader(buf)
}

func StateSnapshotBuilderFromRaw(raw []byte) *StateSnapshotBuilder {
	return &StateSnapshotBuilder{_overrideWithRawBuffer: raw}
}
