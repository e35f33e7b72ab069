// Copyright 2021, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtprtcp

import (
	"github.com/q191201771/lalps/pkg/base"
)

// RtpPackerPayloadAvcHevc h264使用FU-A，h265使用FU切割单个nal
//
type RtpPackerPayloadAvcHevc struct {
	payloadType base.RtpPayloadType
}

func NewRtpPackerPayloadAvc() *RtpPackerPayloadAvcHevc {
	return NewRtpPackerPayloadAvcHevc(base.RtpPayloadTypeH264)
}

func NewRtpPackerPayloadHevc() *RtpPackerPayloadAvcHevc {
	return NewRtpPackerPayloadAvcHevc(base.RtpPayloadTypeHevc)
}

// NewRtpPackerPayloadAvcHevc
//
// @param payloadType: base.RtpPayloadTypeH264 或 base.RtpPayloadTypeHevc，其他值按h264处理
//
func NewRtpPackerPayloadAvcHevc(payloadType base.RtpPayloadType) *RtpPackerPayloadAvcHevc {
	return &RtpPackerPayloadAvcHevc{
		payloadType: payloadType,
	}
}

// Pack @param in: 单个nal，不包含start code
//
// 小于<maxSize>的nal直接作为一个rtp payload，否则切割
//
func (r *RtpPackerPayloadAvcHevc) Pack(in []byte, maxSize int) (out [][]byte) {
	if in == nil || maxSize <= fuaHeaderSizeHevc {
		return
	}

	if len(in) < maxSize {
		item := make([]byte, len(in))
		copy(item, in)
		out = append(out, item)
		return
	}

	return r.packFu(in, maxSize)
}

func (r *RtpPackerPayloadAvcHevc) packFu(nal []byte, maxSize int) (out [][]byte) {
	// pack逻辑
	//
	// avc
	//
	// 输入
	// nri     [01, 02]
	// nalType [03, 07]
	//
	// 输出
	// nri     [01, 02]
	// 28      [03, 07]    28是avc fua的nal type
	// start   [10]
	// end     [11]
	// nalType [13, 17]
	//
	// hevc
	//
	// 输入
	// nalType [01, 06]
	//
	// 输出
	// 49      [01, 06] 49是hevc fu的nal type
	// 1       [10, 17] layerId=0, tid=1
	// start   [20]
	// end     [21]
	// nalType [22, 27] 注意，和输入的nalType的所在type字节的位位置不同
	//

	var (
		bpos       int // 跳过输入的nal header，使用FU自己的头，避免重复
		headerSize int
		sepos      int // start-end标志所在位置
		header     [fuaHeaderSizeHevc]byte
	)

	if r.payloadType == base.RtpPayloadTypeHevc {
		bpos = 2
		headerSize = fuaHeaderSizeHevc
		sepos = 2
		header[0] = NaluTypeHevcFua << 1
		header[1] = 1 // ffmpeg, rtpenc_h264_hevc.c, func nal_send
		header[2] = (nal[0] >> 1) & 0x3F
	} else {
		bpos = 1
		headerSize = fuaHeaderSizeAvc
		sepos = 1
		header[0] = (nal[0] & 0x60) | NaluTypeAvcFua
		header[1] = nal[0] & 0x1F
	}

	chunk := maxSize - headerSize
	epos := len(nal)
	n := (epos - bpos + chunk - 1) / chunk
	out = make([][]byte, 0, n)

	for i := 0; bpos < epos; i++ {
		size := chunk
		if epos-bpos < chunk {
			size = epos - bpos
		}

		item := make([]byte, headerSize+size)
		copy(item, header[:headerSize])
		if i == 0 {
			item[sepos] |= 0x80 // start
		}
		if bpos+size == epos {
			item[sepos] |= 0x40 // end
		}
		copy(item[headerSize:], nal[bpos:bpos+size])
		out = append(out, item)

		bpos += size
	}
	return
}
