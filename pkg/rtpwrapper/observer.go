// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtpwrapper

import "github.com/q191201771/lalps/pkg/rtprtcp"

type (
	OnBefore  func(raw []byte)
	OnSuccess func(pkt rtprtcp.RtpPacket)
	OnError   func(err error)
)

// IWrapperObserver Wrapper的回调，所有回调都在 Wrapper.Wrap 的调用栈中同步执行
//
type IWrapperObserver interface {
	// OnBefore 每次调用 Wrapper.Wrap 时，在处理之前回调一次
	//
	// @param raw: 业务方传入的原始数据，注意，不要修改
	//
	OnBefore(raw []byte)

	// OnSuccess 每生成一个rtp包回调一次，按seq的顺序
	//
	// @param pkt: 内存块为独立新申请，回调结束后由业务方持有
	//
	OnSuccess(pkt rtprtcp.RtpPacket)

	// OnError 可恢复的错误，比如未知的nal type，回调后 Wrapper 继续处理
	//
	OnError(err error)
}

// DefaultWrapperObserver 所有回调都为空实现，业务方可以嵌入它，只实现自己关心的回调
//
type DefaultWrapperObserver struct{}

func (DefaultWrapperObserver) OnBefore(raw []byte) {}

func (DefaultWrapperObserver) OnSuccess(pkt rtprtcp.RtpPacket) {}

func (DefaultWrapperObserver) OnError(err error) {}

var _ IWrapperObserver = DefaultWrapperObserver{}
