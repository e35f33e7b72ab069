// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package rtpwrapper

import (
	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/lalps/pkg/gb28181"
	"github.com/q191201771/lalps/pkg/h2645"
	"github.com/q191201771/lalps/pkg/rtprtcp"
	"github.com/q191201771/naza/pkg/nazalog"
)

var Log = nazalog.GetGlobalLogger()

// Wrapper 将h264、h265的nal，以及g711音频打包成rtp包，可选先封装成ps流
//
// 数据流：原始数据 -> [PsMuxer ->] 切片 -> rtp包 -> 回调
//
// 内部的seq计数器以及PsMuxer的时间戳都是会话级别的状态，一路流对应一个Wrapper。
// 非协程安全，同一个Wrapper的调用需要由使用方串行化。
//
type Wrapper struct {
	option WrapperOption

	packer  *rtprtcp.RtpPacker
	psMuxer *gb28181.PsMuxer

	pcmPacker  rtprtcp.IRtpPackerPayload
	avcPacker  rtprtcp.IRtpPackerPayload
	hevcPacker rtprtcp.IRtpPackerPayload
	psPacker   rtprtcp.IRtpPackerPayload

	onBefore  OnBefore
	onSuccess OnSuccess
	onError   OnError
}

type WrapperOption struct {
	Ssrc           uint32
	FirstSeq       uint16
	MaxPayloadSize int

	// FrameRate 封装ps时使用，决定scr、pts、dts每帧的增量
	FrameRate int

	// HevcPs 封装ps时视频是否为h265
	HevcPs bool

	// H265NaluTypeCheck 默认所有视频类型都按第一个字节的低5位检查nal type是否在[1, 12]内。
	// 为true时，hevc以及 HevcPs 的ps改为按h265的nal type检查，范围为[0, 40]
	H265NaluTypeCheck bool
}

var defaultWrapperOption = WrapperOption{
	Ssrc:              base.RtpDefaultSsrc,
	FirstSeq:          0,
	MaxPayloadSize:    base.RtpDefaultMaxPayloadSize,
	FrameRate:         base.PsDefaultFrameRate,
	HevcPs:            false,
	H265NaluTypeCheck: false,
}

type ModWrapperOption func(option *WrapperOption)

func NewWrapper(modOptions ...ModWrapperOption) *Wrapper {
	option := defaultWrapperOption
	for _, fn := range modOptions {
		fn(&option)
	}
	if option.MaxPayloadSize < base.RtpMinMaxPayloadSize {
		Log.Warnf("invalid max payload size, use default. size=%d", option.MaxPayloadSize)
		option.MaxPayloadSize = defaultWrapperOption.MaxPayloadSize
	}

	videoStreamType := gb28181.StreamTypeH264
	if option.HevcPs {
		videoStreamType = gb28181.StreamTypeH265
	}

	return &Wrapper{
		option: option,
		packer: rtprtcp.NewRtpPacker(func(o *rtprtcp.RtpPackerOption) {
			o.Ssrc = option.Ssrc
			o.FirstSeq = option.FirstSeq
			o.MaxPayloadSize = option.MaxPayloadSize
		}),
		psMuxer: gb28181.NewPsMuxer(func(o *gb28181.PsMuxerOption) {
			o.FrameRate = option.FrameRate
			o.VideoStreamType = videoStreamType
		}),
		pcmPacker:  rtprtcp.NewRtpPackerPayloadPcm(),
		avcPacker:  rtprtcp.NewRtpPackerPayloadAvc(),
		hevcPacker: rtprtcp.NewRtpPackerPayloadHevc(),
		psPacker:   rtprtcp.NewRtpPackerPayloadPs(),
	}
}

func (w *Wrapper) WithObserver(obs IWrapperObserver) *Wrapper {
	w.onBefore = obs.OnBefore
	w.onSuccess = obs.OnSuccess
	w.onError = obs.OnError
	return w
}

// WithCallbackFunc 参数可以为nil，为nil的回调不会被调用
//
func (w *Wrapper) WithCallbackFunc(onBefore OnBefore, onSuccess OnSuccess, onError OnError) *Wrapper {
	w.onBefore = onBefore
	w.onSuccess = onSuccess
	w.onError = onError
	return w
}

// Wrap 打包一帧数据，每个生成的rtp包都通过 OnSuccess 回调出去
//
// @param raw: pcm时为g711a数据，其他类型时为单个nal，可以带或者不带start code。
//             内部不持有，也不修改
//
// @param timestamp: rtp时间戳，视频90000，音频8000
//
func (w *Wrapper) Wrap(raw []byte, payloadType base.RtpPayloadType, timestamp uint32) {
	w.notifyBefore(raw)

	switch payloadType {
	case base.RtpPayloadTypePcm:
		if len(raw) == 0 {
			w.notifyError(base.ErrEmptyPayload)
			return
		}
		w.packer.Iterate(w.pcmPacker, payloadType, timestamp, raw, w.notifySuccess)
	case base.RtpPayloadTypeH264, base.RtpPayloadTypeHevc, base.RtpPayloadTypePs:
		w.wrapVideo(raw, payloadType, timestamp)
	default:
		w.notifyError(base.NewErrUnsupportedPayloadType(payloadType))
	}
}

// WrapPsAudio g711a音频封装成ps后打包成rtp包，payload type为ps
//
// @param raw: g711a数据，一般为20毫秒160字节
//
func (w *Wrapper) WrapPsAudio(raw []byte, timestamp uint32) {
	w.notifyBefore(raw)

	if len(raw) == 0 {
		w.notifyError(base.ErrEmptyPayload)
		return
	}
	ps := w.psMuxer.PackageAudio(raw)
	w.send(ps, base.RtpPayloadTypePs, timestamp, w.psPacker)
}

// Seq 下一个rtp包将使用的seq
func (w *Wrapper) Seq() uint16 {
	return w.packer.Seq()
}

func (w *Wrapper) PsMuxer() *gb28181.PsMuxer {
	return w.psMuxer
}

// ----- private -------------------------------------------------------------------------------------------------------

func (w *Wrapper) wrapVideo(raw []byte, payloadType base.RtpPayloadType, timestamp uint32) {
	nal := h2645.RemoveStartCode(raw)
	if len(nal) == 0 {
		w.notifyError(base.ErrEmptyPayload)
		return
	}

	checkAsH264 := true
	if w.option.H265NaluTypeCheck {
		checkAsH264 = payloadType == base.RtpPayloadTypeH264 || (payloadType == base.RtpPayloadTypePs && !w.option.HevcPs)
	}
	naluType := h2645.ParseNaluType(checkAsH264, nal[0])
	if !h2645.IsKnownNaluType(checkAsH264, naluType) {
		// 只通知，该帧继续处理
		w.notifyError(base.NewErrUnknownNaluType(naluType))
	}

	var payloadPacker rtprtcp.IRtpPackerPayload
	payload := nal
	switch payloadType {
	case base.RtpPayloadTypeH264:
		payloadPacker = w.avcPacker
	case base.RtpPayloadTypeHevc:
		payloadPacker = w.hevcPacker
	case base.RtpPayloadTypePs:
		payloadPacker = w.psPacker
		payload = w.packagePs(nal)
	}

	w.send(payload, payloadType, timestamp, payloadPacker)
}

// packagePs 按nal type选择ps的打包方式，sps只有PES，关键帧带系统头和节目流映射，其他都按非关键帧处理
//
func (w *Wrapper) packagePs(nal []byte) []byte {
	if w.option.HevcPs {
		switch h2645.ParseNaluType(false, nal[0]) {
		case h2645.H265NaluTypeVps, h2645.H265NaluTypeSps:
			return w.psMuxer.PackageFrameIdr(nal, true)
		case h2645.H265NaluTypeSliceIdr, h2645.H265NaluTypeSliceIdrNlp, h2645.H265NaluTypeSliceCranut:
			return w.psMuxer.PackageFrameIdr(nal, false)
		}
		return w.psMuxer.PackageFrameP(nal)
	}

	switch h2645.ParseNaluType(true, nal[0]) {
	case h2645.H264NaluTypeSps:
		return w.psMuxer.PackageFrameIdr(nal, true)
	case h2645.H264NaluTypeIdrSlice:
		return w.psMuxer.PackageFrameIdr(nal, false)
	}
	return w.psMuxer.PackageFrameP(nal)
}

// send 小于单包上限时不切片，否则交给对应的切片策略
//
func (w *Wrapper) send(payload []byte, payloadType base.RtpPayloadType, timestamp uint32, payloadPacker rtprtcp.IRtpPackerPayload) {
	if len(payload) < w.option.MaxPayloadSize {
		w.notifySuccess(w.packer.PackSingle(payloadType, timestamp, clone(payload)))
		return
	}

	Log.Debugf("fragment. pt=%s, len=%d, seq=%d", payloadType.ReadableString(), len(payload), w.packer.Seq())
	w.packer.Iterate(payloadPacker, payloadType, timestamp, payload, w.notifySuccess)
}

func (w *Wrapper) notifyBefore(raw []byte) {
	if w.onBefore != nil {
		w.onBefore(raw)
	}
}

func (w *Wrapper) notifySuccess(pkt rtprtcp.RtpPacket) {
	if w.onSuccess != nil {
		w.onSuccess(pkt)
	}
}

func (w *Wrapper) notifyError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

func clone(b []byte) []byte {
	ret := make([]byte, len(b))
	copy(ret, b)
	return ret
}
