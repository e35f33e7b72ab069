// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtprtcp

// RtpPackerPayloadPs ps流按<maxSize>直接切割，每个rtp包不额外增加任何头
//
// 接收方按rtp包头中的mark位判断一个ps包（一帧）是否结束
//
type RtpPackerPayloadPs struct {
}

func NewRtpPackerPayloadPs() *RtpPackerPayloadPs {
	return &RtpPackerPayloadPs{}
}

func (r *RtpPackerPayloadPs) Pack(in []byte, maxSize int) (out [][]byte) {
	if in == nil || maxSize <= 0 {
		return
	}

	total := len(in) / maxSize
	last := len(in) % maxSize
	n := total
	if last != 0 {
		n++
	}
	out = make([][]byte, 0, n)

	for bpos := 0; bpos < len(in); bpos += maxSize {
		epos := bpos + maxSize
		if epos > len(in) {
			epos = len(in)
		}
		item := make([]byte, epos-bpos)
		copy(item, in[bpos:epos])
		out = append(out, item)
	}
	return
}
