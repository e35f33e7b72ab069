// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// ----- rtp --------------------
var (
	// RtpDefaultSsrc 所有RtpPacket默认使用的ssrc，进程生命周期内不变
	RtpDefaultSsrc uint32 = 0x55667788

	// RtpDefaultMaxPayloadSize 单个rtp包payload部分（不含rtp头）的最大大小
	RtpDefaultMaxPayloadSize = 1400

	// RtpMinMaxPayloadSize 单个rtp包payload最大大小的下限，需要大于h265 FU头的3字节，否则无法切片
	RtpMinMaxPayloadSize = 4
)

// ----- ps --------------------
var (
	// PsDefaultFrameRate 视频帧率，用于计算每帧scr、pts、dts的增量
	PsDefaultFrameRate = 25
)
