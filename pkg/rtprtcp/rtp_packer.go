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

// RtpPacker 将帧数据打包成rtp包
//
// 所有payload type共用一个seq计数器，seq在65535之后翻转为0
//
// 注意，非协程安全，同一个RtpPacker的调用需要由使用方串行化
//
type RtpPacker struct {
	option RtpPackerOption

	seq uint16
}

type RtpPackerOption struct {
	MaxPayloadSize int
	FirstSeq       uint16 // 初始seq
	Ssrc           uint32
}

var defaultRtpPackerOption = RtpPackerOption{
	MaxPayloadSize: base.RtpDefaultMaxPayloadSize,
	FirstSeq:       0,
	Ssrc:           base.RtpDefaultSsrc,
}

type ModRtpPackerOption func(option *RtpPackerOption)

func NewRtpPacker(modOptions ...ModRtpPackerOption) *RtpPacker {
	option := defaultRtpPackerOption
	for _, fn := range modOptions {
		fn(&option)
	}

	return &RtpPacker{
		option: option,
		seq:    option.FirstSeq,
	}
}

func (r *RtpPacker) MaxPayloadSize() int {
	return r.option.MaxPayloadSize
}

// Seq 下一个rtp包将使用的seq
func (r *RtpPacker) Seq() uint16 {
	return r.seq
}

// Iterate 使用<payloadPacker>切割<in>，并按顺序回调每个rtp包
//
// 最后一个rtp包的mark为1，其余为0
//
// @param timestamp: rtp包头中的时间戳，所有切割出来的rtp包相同
//
func (r *RtpPacker) Iterate(payloadPacker IRtpPackerPayload, pt base.RtpPayloadType, timestamp uint32, in []byte, handler func(pkt RtpPacket)) {
	payloads := payloadPacker.Pack(in, r.option.MaxPayloadSize)
	for i, payload := range payloads {
		pkt := r.makePacket(pt, timestamp, payload)
		if i == len(payloads)-1 {
			pkt.SetMark(1)
		} else {
			pkt.SetMark(0)
		}
		handler(pkt)
	}
}

// Pack 同 Iterate，只是将结果以数组的形式返回
//
func (r *RtpPacker) Pack(payloadPacker IRtpPackerPayload, pt base.RtpPayloadType, timestamp uint32, in []byte) (out []RtpPacket) {
	r.Iterate(payloadPacker, pt, timestamp, in, func(pkt RtpPacket) {
		out = append(out, pkt)
	})
	return
}

// PackSingle 不做切割，<payload>整体作为一个rtp包，mark为1
//
// @param payload: 直接被rtp包引用
//
func (r *RtpPacker) PackSingle(pt base.RtpPayloadType, timestamp uint32, payload []byte) RtpPacket {
	pkt := r.makePacket(pt, timestamp, payload)
	pkt.SetMark(1)
	return pkt
}

func (r *RtpPacker) makePacket(pt base.RtpPayloadType, timestamp uint32, payload []byte) RtpPacket {
	pkt := MakeDefaultRtpPacket(uint8(pt), timestamp)
	if r.option.Ssrc != base.RtpDefaultSsrc {
		pkt.SetSsrc(r.option.Ssrc)
	}
	pkt.SetSeq(r.genSeq())
	pkt.SetPayload(payload)
	return pkt
}

func (r *RtpPacker) genSeq() (ret uint16) {
	ret = r.seq
	r.seq++
	return
}
