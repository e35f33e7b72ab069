// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"bytes"
	"net"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestMergeWriter(t *testing.T) {
	goldenBuf1 := bytes.Repeat([]byte{'a'}, 8192)
	goldenBuf2 := bytes.Repeat([]byte{'b'}, 8192)

	var cbBuf net.Buffers
	var cbCount int
	w := NewMergeWriter(func(bs net.Buffers) {
		cbBuf = bs
		cbCount++
	}, 4096)

	// 单个超过阈值，不拆分
	w.Write(goldenBuf1)
	assert.Equal(t, 1, len(cbBuf))
	assert.Equal(t, goldenBuf1, cbBuf[0])
	assert.Equal(t, 0, w.Buffered())
	cbBuf = nil

	// 累计未超过
	w.Write(goldenBuf1[:1024])
	w.Write(goldenBuf2[:2048])
	assert.Equal(t, nil, cbBuf)
	assert.Equal(t, 3072, w.Buffered())

	// 累计超过
	w.Write(goldenBuf1[:2048])
	assert.Equal(t, 3, len(cbBuf))
	assert.Equal(t, goldenBuf1[:1024], cbBuf[0])
	assert.Equal(t, goldenBuf2[:2048], cbBuf[1])
	assert.Equal(t, goldenBuf1[:2048], cbBuf[2])
	cbBuf = nil

	// 强制刷新
	w.Write(goldenBuf1[:16])
	w.Flush()
	assert.Equal(t, 1, len(cbBuf))
	assert.Equal(t, goldenBuf1[:16], cbBuf[0])

	// 没有缓存时不回调
	n := cbCount
	w.Flush()
	assert.Equal(t, n, cbCount)
}

func TestMergeWriter_ZeroSize(t *testing.T) {
	var cbCount int
	w := NewMergeWriter(func(bs net.Buffers) {
		cbCount++
		assert.Equal(t, 1, len(bs))
	}, 0)
	w.Write([]byte{1})
	w.Write([]byte{2})
	assert.Equal(t, 2, cbCount)
}
