// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"net"
)

// MergeWriter 缓存多个内存块，总大小达到阈值后一次性回调给上层，减少实际写的次数
//
// 注意，单个内存块不会被拆分
type MergeWriter struct {
	onWritev OnWritev
	size     int

	currSize int
	bs       net.Buffers
}

type OnWritev func(bs net.Buffers)

// NewMergeWriter
//
// @param onWritev: 回调缓存的1~n个内存块
// @param size:     回调阈值，小于等于0时每次写都直接回调
//
func NewMergeWriter(onWritev OnWritev, size int) *MergeWriter {
	return &MergeWriter{
		onWritev: onWritev,
		size:     size,
	}
}

// Write 注意，函数调用结束后，<b>内存块会被内部持有，直到回调
//
func (w *MergeWriter) Write(b []byte) {
	w.bs = append(w.bs, b)
	w.currSize += len(b)
	if w.currSize >= w.size {
		w.flush()
	}
}

// Flush 强制回调所有缓存的内存块，没有缓存时不回调
//
func (w *MergeWriter) Flush() {
	if len(w.bs) == 0 {
		return
	}
	w.flush()
}

// Buffered 当前缓存的大小
func (w *MergeWriter) Buffered() int {
	return w.currSize
}

func (w *MergeWriter) flush() {
	Log.Tracef("[%p] MergeWriter flush. num=%d, size=%d", w, len(w.bs), w.currSize)
	w.onWritev(w.bs)
	w.currSize = 0
	w.bs = nil
}
