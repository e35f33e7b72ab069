// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "strings"

// RtpPayloadType rtp包头中的payload type字段
//
// 只支持以下四种：G.711(PCM), PS, HEVC, H264
//
type RtpPayloadType uint8

const (
	RtpPayloadTypePcm  RtpPayloadType = 0x08
	RtpPayloadTypePs   RtpPayloadType = 0x60 // 96
	RtpPayloadTypeHevc RtpPayloadType = 0x64 // 100
	RtpPayloadTypeH264 RtpPayloadType = 0x66 // 102
)

const (
	RtpClockRateVideo = 90000
	RtpClockRateAudio = 8000
)

func (pt RtpPayloadType) IsSupported() bool {
	switch pt {
	case RtpPayloadTypePcm, RtpPayloadTypePs, RtpPayloadTypeHevc, RtpPayloadTypeH264:
		return true
	}
	return false
}

// IsVideo PS也认为是视频，音频走ps需要调用专门的接口
func (pt RtpPayloadType) IsVideo() bool {
	switch pt {
	case RtpPayloadTypePs, RtpPayloadTypeHevc, RtpPayloadTypeH264:
		return true
	}
	return false
}

func (pt RtpPayloadType) ClockRate() int {
	if pt == RtpPayloadTypePcm {
		return RtpClockRateAudio
	}
	return RtpClockRateVideo
}

func (pt RtpPayloadType) ReadableString() string {
	switch pt {
	case RtpPayloadTypePcm:
		return "pcm"
	case RtpPayloadTypePs:
		return "ps"
	case RtpPayloadTypeHevc:
		return "hevc"
	case RtpPayloadTypeH264:
		return "h264"
	}
	return "unknown"
}

// ParseRtpPayloadType 配置文件等场景使用，大小写不敏感
func ParseRtpPayloadType(s string) (RtpPayloadType, bool) {
	switch strings.ToLower(s) {
	case "pcm", "g711", "g711a", "pcma":
		return RtpPayloadTypePcm, true
	case "ps":
		return RtpPayloadTypePs, true
	case "hevc", "h265":
		return RtpPayloadTypeHevc, true
	case "h264", "avc":
		return RtpPayloadTypeH264, true
	}
	return 0, false
}
