// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabytes"
)

// DumpFile 将rtp包逐个写入文件，便于离线分析或者回放
//
// 每条记录的格式：
//
//   ver(4) | typ(4) | len(4) | timestamp(4) | body(len)
//
// 均为大端。typ为rtp payload type，timestamp为rtp包头中的timestamp。
//
// 写文件时内部使用 MergeWriter 合并多条记录，Close 时写入剩余的记录。
//
type DumpFile struct {
	file *os.File
	mw   *MergeWriter

	writeErr error
}

const (
	DumpFileVer           uint32 = 1
	dumpFileMessageHeader        = 16
	dumpFileMergeSize            = 64 * 1024
)

type DumpFileMessage struct {
	Ver       uint32
	Typ       uint32
	Len       uint32
	Timestamp uint32
	Body      []byte
}

func NewDumpFile() *DumpFile {
	return &DumpFile{}
}

func (d *DumpFile) OpenToWrite(filename string) (err error) {
	dir := filepath.Dir(filename)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if d.file, err = os.Create(filename); err != nil {
		return
	}
	d.mw = NewMergeWriter(d.onWritev, dumpFileMergeSize)
	return
}

func (d *DumpFile) OpenToRead(filename string) (err error) {
	d.file, err = os.Open(filename)
	return
}

// Write 记录可能只是被缓存，实际写文件的错误在后续的 Write 或者 Close 中返回
//
func (d *DumpFile) Write(typ uint32, timestamp uint32, b []byte) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.mw.Write(d.pack(typ, timestamp, b))
	return d.writeErr
}

// ReadOneMessage 读到文件末尾时返回io.EOF
//
func (d *DumpFile) ReadOneMessage() (m DumpFileMessage, err error) {
	header := make([]byte, dumpFileMessageHeader)
	if _, err = io.ReadFull(d.file, header); err != nil {
		return
	}
	m.Ver = bele.BeUint32(header)
	m.Typ = bele.BeUint32(header[4:])
	m.Len = bele.BeUint32(header[8:])
	m.Timestamp = bele.BeUint32(header[12:])
	if m.Ver != DumpFileVer {
		err = fmt.Errorf("%w. ver=%d", ErrDumpFile, m.Ver)
		return
	}

	m.Body = make([]byte, m.Len)
	if _, err = io.ReadFull(d.file, m.Body); err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (d *DumpFile) Close() error {
	if d.file == nil {
		return nil
	}
	if d.mw != nil {
		d.mw.Flush()
	}
	if err := d.file.Close(); err != nil && d.writeErr == nil {
		return err
	}
	return d.writeErr
}

// ---------------------------------------------------------------------------------------------------------------------

func (m *DumpFileMessage) DebugString() string {
	return fmt.Sprintf("ver: %d, typ: %d, len: %d, timestamp: %d, hex: %s",
		m.Ver, m.Typ, m.Len, m.Timestamp, hex.Dump(nazabytes.Prefix(m.Body, 16)))
}

// ---------------------------------------------------------------------------------------------------------------------

func (d *DumpFile) onWritev(bs net.Buffers) {
	if d.writeErr != nil {
		return
	}
	_, d.writeErr = bs.WriteTo(d.file)
}

func (d *DumpFile) pack(typ uint32, timestamp uint32, b []byte) []byte {
	ret := make([]byte, len(b)+dumpFileMessageHeader)
	bele.BePutUint32(ret, DumpFileVer)
	bele.BePutUint32(ret[4:], typ)
	bele.BePutUint32(ret[8:], uint32(len(b)))
	bele.BePutUint32(ret[12:], timestamp)
	copy(ret[16:], b)
	return ret
}
