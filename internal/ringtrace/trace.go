// Package ringtrace records an append-only, line-delimited JSON trace of
// ring operations (mount decisions, write outcomes, migrations) for use
// by crash-equivalence tests, which compare the cursor a remount
// reconstructs against the writes the trace recorded. The package records
// and reads traces; it does not replay them against a device.
//
// Uses a one-line-per-operation JSON format rather than a binary trace
// format, appropriate for this module's much smaller operation set.
package ringtrace

import (
	"bufio"
	"encoding/json"
	"io"
)

// OpType identifies the kind of ring operation a trace Entry records.
type OpType string

const (
	OpMount   OpType = "mount"
	OpWrite   OpType = "write"
	OpMigrate OpType = "migrate"
	OpUnmount OpType = "unmount"
)

// Entry is one recorded operation. Not every field is meaningful for
// every OpType; unused fields are omitted on encode.
type Entry struct {
	Seq      int    `json:"seq"`
	Op       OpType `json:"op"`
	Block    uint32 `json:"block"`
	Page     uint32 `json:"page,omitempty"`
	NewBlock uint32 `json:"new_block,omitempty"`
	RecordID uint64 `json:"record_id,omitempty"`
	DataCRC  uint32 `json:"data_crc,omitempty"`
}

// Recorder appends Entry values to an underlying writer, one JSON object
// per line, numbering them in call order.
type Recorder struct {
	enc *json.Encoder
	seq int
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w)}
}

func (r *Recorder) next(e Entry) error {
	r.seq++
	e.Seq = r.seq
	return r.enc.Encode(e)
}

// Mount records that recovery settled the cursor on (block, page) with
// the given next record id.
func (r *Recorder) Mount(block, page uint32, nextID uint64) error {
	return r.next(Entry{Op: OpMount, Block: block, Page: page, RecordID: nextID})
}

// Write records a successful page write.
func (r *Recorder) Write(block, page uint32, recordID uint64, dataCRC uint32) error {
	return r.next(Entry{Op: OpWrite, Block: block, Page: page, RecordID: recordID, DataCRC: dataCRC})
}

// Migrate records that block was replaced by newBlock after a write
// failure.
func (r *Recorder) Migrate(block, newBlock uint32) error {
	return r.next(Entry{Op: OpMigrate, Block: block, NewBlock: newBlock})
}

// Unmount records a clean unmount at the given cursor.
func (r *Recorder) Unmount(block, page uint32) error {
	return r.next(Entry{Op: OpUnmount, Block: block, Page: page})
}

// ReadAll decodes every JSON-lines Entry from r, in recorded order.
func ReadAll(r io.Reader) ([]Entry, error) {
	var out []Entry
	dec := json.NewDecoder(bufio.NewReader(r))
	for dec.More() {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteEntries decodes nothing; it is the write-side counterpart used by
// tests that want to hand-construct a trace rather than record one live.
func WriteEntries(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
