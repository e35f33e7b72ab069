// Copyright 2021, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtprtcp

import (
	"fmt"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/naza/pkg/bele"
)

// -----------------------------------
// rfc3550 5.1 RTP Fixed Header Fields
// -----------------------------------
//
// 0                   1                   2                   3
// 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
// +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
// |V=2|P|X|  CC   |M|     PT      |       sequence number         |
// +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
// |                           timestamp                           |
// +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
// |           synchronization source (SSRC) identifier            |
// +=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+

const (
	RtpFixedHeaderLength = 12

	DefaultRtpVersion = 2

	// 新建rtp包时预分配的payload大小，只是一个占位，使用方需要用 SetPayload 替换
	defaultPcmPayloadSize   = 320
	defaultOtherPayloadSize = 1400
)

type RtpHeader struct {
	Version    uint8  // 2b  *
	Padding    uint8  // 1b
	Extension  uint8  // 1
	CsrcCount  uint8  // 4b
	Mark       uint8  // 1b  *
	PacketType uint8  // 7b
	Seq        uint16 // 16b **
	Timestamp  uint32 // 32b **** samples
	Ssrc       uint32 // 32b **** Synchronization source
}

// RtpPacket 一个rtp包
//
// 包头在创建时序列化一次，后续修改seq、mark等字段时只改写包头中对应的字节
//
type RtpPacket struct {
	Header  RtpHeader
	Payload []byte

	raw [RtpFixedHeaderLength]byte
}

func (h *RtpHeader) PackTo(out []byte) {
	out[0] = h.CsrcCount | (h.Extension << 4) | (h.Padding << 5) | (h.Version << 6)
	out[1] = h.PacketType | (h.Mark << 7)
	bele.BePutUint16(out[2:], h.Seq)
	bele.BePutUint32(out[4:], h.Timestamp)
	bele.BePutUint32(out[8:], h.Ssrc)
}

func MakeDefaultRtpHeader() RtpHeader {
	return RtpHeader{
		Version:   DefaultRtpVersion,
		Padding:   0,
		Extension: 0,
		CsrcCount: 0,
		Ssrc:      base.RtpDefaultSsrc,
	}
}

// MakeDefaultRtpPacket
//
// @param pt:        rtp包头中的payload type
// @param timestamp: 采样时钟，视频90000，音频8000
//
func MakeDefaultRtpPacket(pt uint8, timestamp uint32) (pkt RtpPacket) {
	pkt.Header = MakeDefaultRtpHeader()
	pkt.Header.PacketType = pt & 0x7F
	pkt.Header.Timestamp = timestamp
	pkt.Header.PackTo(pkt.raw[:])

	if base.RtpPayloadType(pt) == base.RtpPayloadTypePcm {
		pkt.Payload = make([]byte, defaultPcmPayloadSize)
	} else {
		pkt.Payload = make([]byte, defaultOtherPayloadSize)
	}
	return
}

// MakeRtpPacket 使用<h>中的所有字段，<payload>直接被引用
//
func MakeRtpPacket(h RtpHeader, payload []byte) (pkt RtpPacket) {
	pkt.Header = h
	pkt.Payload = payload
	pkt.Header.PackTo(pkt.raw[:])
	return
}

func (p *RtpPacket) SetSeq(seq uint16) {
	p.Header.Seq = seq
	bele.BePutUint16(p.raw[2:], seq)
}

// SetMark 只改写包头第二个字节的最高位，payload type不受影响
//
func (p *RtpPacket) SetMark(mark uint8) {
	if mark == 1 {
		p.Header.Mark = 1
		p.raw[1] |= 0x80
	} else if mark == 0 {
		p.Header.Mark = 0
		p.raw[1] &= 0x7F
	}
}

func (p *RtpPacket) SetSsrc(ssrc uint32) {
	p.Header.Ssrc = ssrc
	bele.BePutUint32(p.raw[8:], ssrc)
}

// SetPayload <payload>直接被引用
//
func (p *RtpPacket) SetPayload(payload []byte) {
	p.Payload = payload
}

// HeaderBytes 返回序列化后的12字节包头，内存块为独立新申请
//
func (p *RtpPacket) HeaderBytes() []byte {
	ret := make([]byte, RtpFixedHeaderLength)
	copy(ret, p.raw[:])
	return ret
}

// Bytes 包头加payload，内存块为独立新申请
//
func (p *RtpPacket) Bytes() []byte {
	ret := make([]byte, RtpFixedHeaderLength+len(p.Payload))
	copy(ret, p.raw[:])
	copy(ret[RtpFixedHeaderLength:], p.Payload)
	return ret
}

func (p *RtpPacket) DebugString() string {
	return fmt.Sprintf("pt=%d, seq=%d, ts=%d, mark=%d, ssrc=%d, len(payload)=%d",
		p.Header.PacketType, p.Header.Seq, p.Header.Timestamp, p.Header.Mark, p.Header.Ssrc, len(p.Payload))
}

func ParseRtpHeader(b []byte) (h RtpHeader, err error) {
	if len(b) < RtpFixedHeaderLength {
		err = base.ErrRtpRtcpShortBuffer
		return
	}

	h.Version = b[0] >> 6
	h.Padding = (b[0] >> 5) & 0x1
	h.Extension = (b[0] >> 4) & 0x1
	h.CsrcCount = b[0] & 0xF
	h.Mark = b[1] >> 7
	h.PacketType = b[1] & 0x7F
	h.Seq = bele.BeUint16(b[2:])
	h.Timestamp = bele.BeUint32(b[4:])
	h.Ssrc = bele.BeUint32(b[8:])
	return
}

// ParseRtpPacket 函数调用结束后，不持有参数<b>的内存块
//
// 注意，只支持没有csrc和extension的rtp包，这也是本库产生的rtp包的格式
//
func ParseRtpPacket(b []byte) (pkt RtpPacket, err error) {
	pkt.Header, err = ParseRtpHeader(b)
	if err != nil {
		return
	}
	copy(pkt.raw[:], b[:RtpFixedHeaderLength])
	pkt.Payload = make([]byte, len(b)-RtpFixedHeaderLength)
	copy(pkt.Payload, b[RtpFixedHeaderLength:])
	return
}
