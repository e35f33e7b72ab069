// Copyright 2021, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtprtcp

// IRtpPackerPayload 将一帧数据切割成一个或多个rtp payload
//
// 注意，切割后payload的个数为 ceil(有效数据长度 / 单包有效数据长度)，最后一包大小为实际剩余的大小
//
type IRtpPackerPayload interface {
	// Pack @param maxSize: rtp payload包体部分（不含包头）的最大大小
	//
	// @return out: 内存块为独立新申请；函数返回后，内部不再持有该内存块
	//
	Pack(in []byte, maxSize int) (out [][]byte)
}

var (
	_ IRtpPackerPayload = &RtpPackerPayloadPcm{}
	_ IRtpPackerPayload = &RtpPackerPayloadAvcHevc{}
	_ IRtpPackerPayload = &RtpPackerPayloadPs{}
)
